// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid capture, unknown action).
	UserError = 1

	// ConfigError indicates a settings load/save error.
	ConfigError = 2

	// BackendError indicates an API or network error.
	BackendError = 3
)
