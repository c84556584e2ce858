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
)

func init() {
	Register(&PruneCmd{})
}

// PruneCmd implements the prune command.
type PruneCmd struct{}

func (c *PruneCmd) Name() string       { return "prune" }
func (c *PruneCmd) Aliases() []string  { return nil }
func (c *PruneCmd) Synopsis() string   { return "Remove completed tasks now" }
func (c *PruneCmd) Usage() string      { return "tasklist prune" }
func (c *PruneCmd) NeedsSession() bool { return true }

func (c *PruneCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *PruneCmd) Run(ctx context.Context, cfg *config.Config, sess *session.Session, args []string, out, errOut io.Writer) int {
	removed := sess.Tasks().PruneCompleted()
	sess.Logger().Debug("pruned", zap.Int("removed", removed), zap.Int("remaining", sess.Tasks().Len()))
	if !cfg.Quiet {
		fmt.Fprintf(out, "removed %d\n", removed)
	}
	return exitcode.Success
}
