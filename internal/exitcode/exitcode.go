// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty name, position out of range).
	UserError = 1

	// ConfigError indicates an unreadable config file or a bad setting,
	// including an unknown storage driver or malformed DSN.
	ConfigError = 2
)
