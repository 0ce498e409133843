package exitcodes

const (
	// ================================
	// Platform-universal exit codes
	// ================================

	// ExitCodeSuccess indicates no errors or failures had occurred.
	ExitCodeSuccess = 0

	// ExitCodeGeneralError indicates some type of general error occurred.
	ExitCodeGeneralError = 1

	// ================================
	// Application-specific exit codes
	// ================================
	// Note: Despite not being standardized, exit codes 2-5 are often used for common use cases, so we avoid them.

	// ExitCodeHandledError indicates the error was already logged by the command and should not be printed again at
	// the top level.
	ExitCodeHandledError = 6

	// ExitCodeFindingsReported indicates a fuzzing campaign completed and reported at least one finding.
	ExitCodeFindingsReported = 7
)
