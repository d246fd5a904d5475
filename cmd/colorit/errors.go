// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/colorit/colorit/internal/config"
	"github.com/colorit/colorit/internal/issue"
	"github.com/colorit/colorit/internal/outcome"

	"github.com/spf13/cobra"
)

// engineError turns a hard engine failure into an ActionableError linked to
// the matching catalog entry.
func engineError(operation, path string, err error) error {
	ec := issue.NewErrorContext().
		WithOperation(operation).
		WithResource(path).
		Wrap(err)

	switch {
	case errors.Is(err, outcome.ErrNotFound):
		ec.WithIssue(issue.FolderNotFoundId).
			WithSuggestion("Check that the path exists and names a folder")
	case errors.Is(err, outcome.ErrPermissionDenied):
		ec.WithIssue(issue.PermissionDeniedId).
			WithSuggestion("Pick a folder you own, or retry from an elevated prompt")
	}
	return ec.BuildError()
}

// colorError reports an unparsable color argument.
func colorError(arg string, err error) error {
	return issue.NewErrorContext().
		WithOperation("parse color").
		WithResource(arg).
		WithIssue(issue.InvalidColorId).
		WithSuggestion("Use a preset name (see 'colorit presets') or #RRGGBB").
		Wrap(err).
		BuildError()
}

// renderError writes the hints of err to w: suggestions, the error chain in
// verbose mode and the linked catalog entry. The one-line message itself is
// printed by fang.
func renderError(w io.Writer, err error, verbose bool, scheme config.ColorScheme) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}

	if hints := ae.Hints(verbose); hints != "" {
		fmt.Fprintln(w, strings.TrimLeft(hints, "\n"))
	}

	entry := ae.CatalogIssue()
	if entry == nil {
		return
	}
	rendered, renderErr := entry.Render(glamourStyle(scheme))
	if renderErr != nil {
		fmt.Fprintf(w, "%s failed to render help: %v\n", WarningStyle.Render("!"), renderErr)
		return
	}
	fmt.Fprint(w, rendered)
}

// glamourStyle maps the configured color scheme onto a glamour style name.
func glamourStyle(scheme config.ColorScheme) string {
	switch scheme {
	case config.ColorSchemeLight:
		return "light"
	case config.ColorSchemeDark:
		return "dark"
	default:
		return "auto"
	}
}

// withErrorRendering wraps a RunE handler so actionable errors get their
// hints printed before cobra and fang take over.
func withErrorRendering(app *App, flags *rootFlagValues, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := run(cmd, args)
		if err != nil {
			renderError(app.stderr, err, flags.verbose, app.colorScheme)
		}
		return err
	}
}

// reportOutcome lists the best-effort steps that did not complete. Error
// details are included in verbose mode. Reasons with a catalog entry get it
// rendered once after the list.
func reportOutcome(w io.Writer, out outcome.Outcome, verbose bool, scheme config.ColorScheme) {
	if out.OK() {
		return
	}

	fmt.Fprintf(w, "%s %d best-effort step(s) did not complete:\n", WarningStyle.Render("!"), len(out.Failures))
	for _, f := range out.Failures {
		if verbose && f.Err != nil {
			fmt.Fprintf(w, "  • %s (%s): %v\n", f.Step, f.Reason, f.Err)
		} else {
			fmt.Fprintf(w, "  • %s (%s)\n", f.Step, f.Reason)
		}
	}

	for _, ri := range reasonIssues {
		if !out.Has(ri.reason) {
			continue
		}
		rendered, err := issue.Get(ri.id).Render(glamourStyle(scheme))
		if err != nil {
			fmt.Fprintf(w, "%s failed to render help: %v\n", WarningStyle.Render("!"), err)
			continue
		}
		fmt.Fprint(w, rendered)
	}
}

// reasonIssues links soft-failure reasons to their catalog entries.
var reasonIssues = []struct {
	reason outcome.Reason
	id     issue.Id
}{
	{outcome.ReasonCorrupt, issue.LedgerCorruptId},
	{outcome.ReasonUnsupported, issue.HostNotSupportedId},
}
