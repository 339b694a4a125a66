package cli

import (
	"errors"
	"fmt"
)

// Exit codes for the docsync CLI
// These codes let CI scripts tell a skipped update apart from a failure
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates invalid arguments or an I/O error
	ExitFailure = 1

	// ExitNotUpdated indicates --strict was given and the file was not updated
	ExitNotUpdated = 2
)

// ExitError carries a specific exit code through cobra to main.
// It is returned after the command has already reported the problem.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}
