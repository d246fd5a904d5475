// SPDX-License-Identifier: MPL-2.0

package outcome

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the target folder does not exist or is not a directory.
	ErrNotFound = errors.New("folder not found")
	// ErrPermissionDenied means the OS rejected a file write or attribute change.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrInvalidArgument means an input value was out of range.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrCorrupt means persisted state could not be parsed.
	ErrCorrupt = errors.New("corrupt state")
)

type (
	// FolderNotFoundError is returned when an override target is missing or
	// is a regular file. It wraps ErrNotFound.
	FolderNotFoundError struct {
		Path string
	}

	// PermissionDeniedError is returned when the OS rejects a write or an
	// attribute change. It wraps both ErrPermissionDenied and the OS error.
	PermissionDeniedError struct {
		Op   string
		Path string
		Err  error
	}

	// CorruptError describes unparsable persisted state. It wraps ErrCorrupt
	// and the decoding error.
	CorruptError struct {
		Path string
		Err  error
	}
)

// Error implements the error interface for FolderNotFoundError.
func (e *FolderNotFoundError) Error() string {
	return fmt.Sprintf("folder not found: %s", e.Path)
}

// Unwrap returns ErrNotFound for errors.Is() compatibility.
func (e *FolderNotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface for PermissionDeniedError.
func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("%s %s: permission denied: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying OS error.
func (e *PermissionDeniedError) Unwrap() []error { return []error{ErrPermissionDenied, e.Err} }

// Error implements the error interface for CorruptError.
func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt %s: %v", e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the decoding error.
func (e *CorruptError) Unwrap() []error { return []error{ErrCorrupt, e.Err} }
