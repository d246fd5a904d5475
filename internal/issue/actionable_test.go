// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *ActionableError
		expected string
	}{
		{
			name:     "operation only",
			err:      &ActionableError{Operation: "apply color"},
			expected: "failed to apply color",
		},
		{
			name:     "operation with resource",
			err:      &ActionableError{Operation: "apply color", Resource: `C:\Projects`},
			expected: `failed to apply color: C:\Projects`,
		},
		{
			name:     "operation with cause",
			err:      &ActionableError{Operation: "load configuration", Cause: errors.New("unexpected token")},
			expected: "failed to load configuration: unexpected token",
		},
		{
			name: "full context",
			err: &ActionableError{
				Operation: "apply color",
				Resource:  `C:\Projects`,
				Cause:     errors.New("folder not found"),
			},
			expected: `failed to apply color: C:\Projects: folder not found`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	err := NewErrorContext().
		WithOperation("remove color").
		Wrap(fs.ErrPermission).
		BuildError()

	if !errors.Is(err, fs.ErrPermission) {
		t.Error("errors.Is should see the wrapped cause")
	}

	var ae *ActionableError
	if !errors.As(err, &ae) {
		t.Fatal("errors.As should find *ActionableError")
	}
	if ae.Operation != "remove color" {
		t.Errorf("Operation = %q, want %q", ae.Operation, "remove color")
	}
}

func TestActionableError_Format(t *testing.T) {
	inner := errors.New("access is denied")
	wrapped := &wrapErr{msg: "write icon", err: inner}

	err := &ActionableError{
		Operation:   "apply color",
		Resource:    "/tmp/photos",
		Suggestions: []string{"Pick a folder you own", "Retry from an elevated prompt"},
		Cause:       wrapped,
	}

	short := err.Format(false)
	if !strings.HasPrefix(short, "failed to apply color: /tmp/photos: write icon: access is denied") {
		t.Errorf("Format(false) = %q", short)
	}
	if !strings.Contains(short, "\n  • Pick a folder you own") || !strings.Contains(short, "\n  • Retry from an elevated prompt") {
		t.Errorf("Format(false) should list suggestions, got %q", short)
	}
	if strings.Contains(short, "Error chain") {
		t.Error("Format(false) should not include the error chain")
	}

	verbose := err.Format(true)
	if !strings.Contains(verbose, "Error chain:\n  1. write icon: access is denied\n  2. access is denied") {
		t.Errorf("Format(true) should include the numbered chain, got %q", verbose)
	}
}

func TestActionableError_FormatNoSuggestions(t *testing.T) {
	err := &ActionableError{Operation: "list history"}
	if got := err.Format(true); got != "failed to list history" {
		t.Errorf("Format(true) = %q, want %q", got, "failed to list history")
	}
}

func TestActionableError_CatalogIssue(t *testing.T) {
	err := &ActionableError{Operation: "apply color", Issue: FolderNotFoundId}
	if got := err.CatalogIssue(); got == nil || got.Id() != FolderNotFoundId {
		t.Errorf("CatalogIssue() = %v, want FolderNotFound entry", got)
	}

	none := &ActionableError{Operation: "apply color"}
	if none.CatalogIssue() != nil {
		t.Error("CatalogIssue() should be nil without a linked issue")
	}
}

func TestErrorContext_Build(t *testing.T) {
	cause := errors.New("boom")
	ae := NewErrorContext().
		WithOperation("apply color").
		WithResource("/srv/share").
		WithSuggestion("first").
		WithSuggestions("second", "third").
		WithIssue(PermissionDeniedId).
		Wrap(cause).
		Build()

	if ae == nil {
		t.Fatal("Build() returned nil")
	}
	if ae.Operation != "apply color" || ae.Resource != "/srv/share" {
		t.Errorf("Build() = %+v", ae)
	}
	if len(ae.Suggestions) != 3 || ae.Suggestions[2] != "third" {
		t.Errorf("Suggestions = %v", ae.Suggestions)
	}
	if ae.Issue != PermissionDeniedId {
		t.Errorf("Issue = %d, want %d", ae.Issue, PermissionDeniedId)
	}
	if !errors.Is(ae, cause) {
		t.Error("Build() should keep the cause")
	}
}

func TestErrorContext_BuildWithoutOperation(t *testing.T) {
	if ae := NewErrorContext().WithResource("/x").Build(); ae != nil {
		t.Errorf("Build() without operation = %v, want nil", ae)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want untyped nil", err)
	}
}

func TestActionableError_Hints(t *testing.T) {
	ae := &ActionableError{Operation: "apply color", Resource: "/data"}
	if got := ae.Hints(true); got != "" {
		t.Errorf("Hints() without suggestions or cause = %q, want empty", got)
	}

	ae.Suggestions = []string{"Check the path"}
	if got, want := ae.Hints(false), "\n\n  • Check the path"; got != want {
		t.Errorf("Hints(false) = %q, want %q", got, want)
	}
	if got := ae.Format(false); got != ae.Error()+ae.Hints(false) {
		t.Errorf("Format(false) = %q, want Error()+Hints()", got)
	}
}

func TestCauseChain_JoinedErrors(t *testing.T) {
	first := &wrapErr{msg: "re-apply /a", err: fs.ErrPermission}
	second := errors.New("re-apply /b: disk full")

	got := causeChain(errors.Join(first, second))

	want := []string{
		first.Error() + "\n" + second.Error(),
		first.Error(),
		fs.ErrPermission.Error(),
		second.Error(),
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("causeChain() = %q, want %q", got, want)
	}
}

type wrapErr struct {
	msg string
	err error
}

func (w *wrapErr) Error() string { return w.msg + ": " + w.err.Error() }
func (w *wrapErr) Unwrap() error { return w.err }
