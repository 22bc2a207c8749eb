package cli

// Exit codes for the relbump CLI.
// The no-release case ("no relevant changes") is a success, not an error.
const (
	// ExitSuccess indicates a completed release or a deliberate no-op.
	ExitSuccess = 0

	// ExitFailure indicates a failed run; in particular a missing
	// metadata store exits with this code.
	ExitFailure = 1
)
