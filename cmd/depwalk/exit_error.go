// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/invowk/depwalk/internal/issue"
)

const (
	// ExitWalkFailed is returned when the dependency tree could not be walked.
	ExitWalkFailed = 1
	// ExitUsage is returned for invalid arguments, flags or configuration.
	ExitUsage = 2
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
	// Verbose includes the error chain of actionable errors in the message.
	Verbose bool
}

// Error returns the display message for the wrapped error.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return formatErrorForDisplay(e.Err, e.Verbose)
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCode maps an error returned by the root command to a process exit code.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	// Cobra argument and flag errors.
	return ExitUsage
}

// formatErrorForDisplay formats an error for user display.
// Actionable errors include their suggestions, and in verbose mode the full error chain.
func formatErrorForDisplay(err error, verbose bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verbose)
	}
	return err.Error()
}
