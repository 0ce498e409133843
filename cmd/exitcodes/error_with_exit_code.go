package exitcodes

import "errors"

// ErrorWithExitCode pairs an error with the process exit code it should produce if it reaches the top level
// unhandled.
type ErrorWithExitCode struct {
	err      error
	exitCode int
}

// NewErrorWithExitCode wraps the given error with the exit code the process should terminate with. The inner error
// may be nil when only the exit code carries meaning.
func NewErrorWithExitCode(err error, exitCode int) *ErrorWithExitCode {
	return &ErrorWithExitCode{
		err:      err,
		exitCode: exitCode,
	}
}

// Error implements the error interface. A nil inner error yields an empty message.
func (e *ErrorWithExitCode) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

// GetInnerErrorAndExitCode resolves an error that bubbled to the top level into the error to report and the exit
// code to terminate with: success for nil, the wrapped code for an ErrorWithExitCode, and the general failure code
// for anything else.
func GetInnerErrorAndExitCode(err error) (error, int) {
	if err == nil {
		return nil, ExitCodeSuccess
	}
	var coded *ErrorWithExitCode
	if errors.As(err, &coded) {
		return coded.err, coded.exitCode
	}
	return err, ExitCodeGeneralError
}
