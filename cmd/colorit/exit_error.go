// SPDX-License-Identifier: MPL-2.0

package cmd

import "fmt"

const (
	// exitFailure is used for hard failures.
	exitFailure = 1
	// exitNoColor is returned by `colorit color` when a folder has no recorded color.
	exitNoColor = 3
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}
