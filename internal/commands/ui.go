package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/session"
	"tasklist/internal/tasks"
	"tasklist/internal/tui"
)

func init() {
	Register(&UICmd{run: tui.Run})
}

// Runner runs an interactive host over list until the user quits.
type Runner func(ctx context.Context, list *tasks.List, out io.Writer) error

// UICmd implements the ui command.
type UICmd struct {
	run Runner
}

// SetRunner replaces the terminal program (for testing).
func (c *UICmd) SetRunner(run Runner) {
	c.run = run
}

func (c *UICmd) Name() string       { return "ui" }
func (c *UICmd) Aliases() []string  { return nil }
func (c *UICmd) Synopsis() string   { return "Interactive task list" }
func (c *UICmd) Usage() string      { return "tasklist ui" }
func (c *UICmd) NeedsSession() bool { return true }

func (c *UICmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UICmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	run := c.run
	if run == nil {
		run = tui.Run
	}
	logger := sess.Logger()
	logger.Debug("ui start", zap.Int("tasks", sess.Tasks().Len()), zap.Bool("storage", sess.HasStorage()))
	if err := run(ctx, sess.Tasks(), out); err != nil {
		logger.Debug("ui exited with error", zap.Error(err))
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	logger.Debug("ui done", zap.Int("tasks", sess.Tasks().Len()))
	return exitcode.Success
}
