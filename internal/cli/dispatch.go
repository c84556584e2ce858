// Package cli parses the command line, opens the session and dispatches to commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"tasklist/internal/commands"
	"tasklist/internal/config"
	"tasklist/internal/exitcode"
	"tasklist/internal/kv"
	"tasklist/internal/logging"
	"tasklist/internal/session"
)

// StoreFactory creates the kv.Store for a config.
// Used to inject the backend during dispatch.
type StoreFactory func(ctx context.Context, cfg *config.Config) (kv.Store, error)

// DefaultStoreFactory opens the backend named by the config.
func DefaultStoreFactory(ctx context.Context, cfg *config.Config) (kv.Store, error) {
	return kv.Open(ctx, kv.Options{
		Driver: cfg.StorageDriver,
		DSN:    cfg.StorageDSN,
		Dir:    cfg.Dir,
	})
}

// Dispatcher handles command-line parsing and dispatch.
type Dispatcher struct {
	registry *commands.Registry
	factory  StoreFactory
}

// NewDispatcher creates a new dispatcher with the given registry and store factory.
// A nil factory means DefaultStoreFactory.
func NewDispatcher(registry *commands.Registry, factory StoreFactory) *Dispatcher {
	if factory == nil {
		factory = DefaultStoreFactory
	}
	return &Dispatcher{
		registry: registry,
		factory:  factory,
	}
}

// Run parses arguments and dispatches to the appropriate command.
// Returns the exit code.
func (d *Dispatcher) Run(ctx context.Context, args []string, out, errOut io.Writer) int {
	// No args -> dispatch to "list" command with no args
	cmdName := "list"
	if len(args) > 0 {
		cmdName, args = args[0], args[1:]
	}

	// If first token starts with -, it's an error (flags require a command)
	if strings.HasPrefix(cmdName, "-") {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}

	cmd, ok := d.registry.Find(cmdName)
	if !ok {
		fmt.Fprintf(errOut, "error: unknown command: %s\n", cmdName)
		return exitcode.UserError
	}
	return d.dispatchCommand(ctx, cmd, args, out, errOut)
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, cmd commands.Command, args []string, out, errOut io.Writer) int {
	fs := pflag.NewFlagSet(cmd.Name(), pflag.ContinueOnError)
	fs.SetOutput(io.Discard) // We handle errors ourselves

	// Common flags
	var configDir string
	var storeDriver string
	var quiet bool
	var debug bool

	fs.StringVar(&configDir, "config", "", "")
	fs.StringVar(&storeDriver, "store", "", "")
	fs.BoolVarP(&quiet, "quiet", "q", false, "")
	fs.BoolVar(&debug, "debug", false, "")

	// Register command-specific flags
	cmd.RegisterFlags(fs)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprintf(out, "Usage: %s\n", cmd.Usage())
			return exitcode.Success
		}
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	cfg.Quiet = quiet
	cfg.Debug = debug
	if storeDriver != "" {
		cfg.StorageDriver = storeDriver
	}

	logger, err := logging.NewLogger(logging.LogLevel(cfg.EffectiveLogLevel()), logging.LogFormat(cfg.LogFormat), errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.ConfigError
	}
	defer func() { _ = logger.Sync() }()
	logger = logger.With(zap.String("command", cmd.Name()))
	logger.Debug("dispatch", zap.Strings("args", fs.Args()), zap.String("config_dir", cfg.Dir))

	if !cmd.NeedsSession() {
		return cmd.Run(ctx, cfg, nil, fs.Args(), out, errOut)
	}

	if err := cfg.EnsureDir(); err != nil {
		logger.Warn("creating config directory", zap.String("dir", cfg.Dir), zap.Error(err))
	}

	store, err := d.factory(ctx, cfg)
	if err != nil {
		if !errors.Is(err, kv.ErrUnavailable) {
			fmt.Fprintf(errOut, "error: storage: %s\n", err)
			return exitcode.ConfigError
		}
		// Unreachable storage is not fatal: run on an empty list and skip the save.
		logger.Warn("storage unavailable; changes will not be saved",
			zap.String("driver", cfg.StorageDriver), zap.Error(err))
		store = nil
	}

	sess := session.Open(ctx, store, logger)
	code := cmd.Run(ctx, cfg, sess, fs.Args(), out, errOut)

	// Save even when ctx was cancelled by a signal.
	if err := sess.Close(context.WithoutCancel(ctx)); err != nil {
		logger.Warn("closing storage", zap.Error(err))
	}
	return code
}
