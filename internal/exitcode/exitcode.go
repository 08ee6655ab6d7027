// Package exitcode defines process exit codes for taskbot.
package exitcode

const (
	// Success indicates a clean shutdown or successful command.
	Success = 0

	// UserError indicates a usage or configuration error (bad flags, invalid config).
	UserError = 1

	// AuthError indicates a missing or rejected bot token.
	AuthError = 2

	// BackendError indicates a chat transport or network error.
	BackendError = 3
)
