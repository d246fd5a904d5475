// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// ActionableError is a user-facing error that says what colorit was doing,
	// which folder or file was involved and what the user can try next. It may
	// point at a catalog Issue for a longer rendered explanation.
	//
	//	err := issue.NewErrorContext().
	//		WithOperation("apply color").
	//		WithResource(`C:\Projects`).
	//		WithIssue(issue.FolderNotFoundId).
	//		Wrap(cause).
	//		BuildError()
	ActionableError struct {
		// Operation is a verb phrase such as "apply color" or "load configuration".
		Operation string

		// Resource is the folder or file involved (optional).
		Resource string

		// Suggestions are short hints printed under the message (optional).
		Suggestions []string

		// Issue links to a catalog entry; zero means none.
		Issue Id

		// Cause is the underlying error (optional).
		Cause error
	}

	// ErrorContext builds ActionableError values incrementally.
	ErrorContext struct {
		operation   string
		resource    string
		suggestions []string
		issue       Id
		cause       error
	}
)

// NewErrorContext creates a new ErrorContext builder.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{}
}

// Error returns "failed to <operation>: <resource>: <cause>".
func (e *ActionableError) Error() string {
	parts := []string{"failed to " + e.Operation}
	if e.Resource != "" {
		parts = append(parts, e.Resource)
	}
	if e.Cause != nil {
		parts = append(parts, e.Cause.Error())
	}
	return strings.Join(parts, ": ")
}

func (e *ActionableError) Unwrap() error {
	return e.Cause
}

// Format returns the message followed by Hints.
func (e *ActionableError) Format(verbose bool) string {
	return e.Error() + e.Hints(verbose)
}

// Hints returns the bulleted suggestions and, in verbose mode, the numbered
// cause chain. Each block starts with a blank line; the result is empty when
// there is nothing to add to Error.
func (e *ActionableError) Hints(verbose bool) string {
	var msg strings.Builder

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n")
		for _, suggestion := range e.Suggestions {
			msg.WriteString("\n  • ")
			msg.WriteString(suggestion)
		}
	}

	if verbose && e.Cause != nil {
		msg.WriteString("\n\nError chain:")
		for i, link := range causeChain(e.Cause) {
			fmt.Fprintf(&msg, "\n  %d. %s", i+1, link)
		}
	}

	return msg.String()
}

// causeChain flattens err depth-first. Joined errors, such as the per-folder
// failures of a guard re-apply, contribute every branch.
func causeChain(err error) []string {
	var links []string
	for err != nil {
		links = append(links, err.Error())
		switch u := err.(type) {
		case interface{ Unwrap() []error }:
			for _, branch := range u.Unwrap() {
				links = append(links, causeChain(branch)...)
			}
			return links
		default:
			err = errors.Unwrap(err)
		}
	}
	return links
}

// CatalogIssue returns the linked catalog entry, or nil.
func (e *ActionableError) CatalogIssue() *Issue {
	if e.Issue == 0 {
		return nil
	}
	return Get(e.Issue)
}

func (c *ErrorContext) WithOperation(op string) *ErrorContext {
	c.operation = op
	return c
}

func (c *ErrorContext) WithResource(res string) *ErrorContext {
	c.resource = res
	return c
}

// WithSuggestion appends a suggestion. Can be called repeatedly.
func (c *ErrorContext) WithSuggestion(sug string) *ErrorContext {
	c.suggestions = append(c.suggestions, sug)
	return c
}

func (c *ErrorContext) WithSuggestions(sugs ...string) *ErrorContext {
	c.suggestions = append(c.suggestions, sugs...)
	return c
}

// WithIssue links the error to a catalog entry.
func (c *ErrorContext) WithIssue(id Id) *ErrorContext {
	c.issue = id
	return c
}

func (c *ErrorContext) Wrap(err error) *ErrorContext {
	c.cause = err
	return c
}

// Build returns nil when no operation was set.
func (c *ErrorContext) Build() *ActionableError {
	if c.operation == "" {
		return nil
	}

	return &ActionableError{
		Operation:   c.operation,
		Resource:    c.resource,
		Suggestions: c.suggestions,
		Issue:       c.issue,
		Cause:       c.cause,
	}
}

// BuildError is Build typed as error, keeping a nil result a nil interface.
func (c *ErrorContext) BuildError() error {
	ae := c.Build()
	if ae == nil {
		return nil
	}
	return ae
}
