// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/colorit/colorit/internal/config"
	"github.com/colorit/colorit/internal/issue"
	"github.com/colorit/colorit/internal/ledger"
	"github.com/colorit/colorit/internal/outcome"
)

func TestEngineError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		err       error
		wantIssue issue.Id
	}{
		{
			name:      "folder not found",
			err:       &outcome.FolderNotFoundError{Path: "/data/photos"},
			wantIssue: issue.FolderNotFoundId,
		},
		{
			name:      "permission denied",
			err:       &outcome.PermissionDeniedError{Op: "write", Path: "/data/photos/folder.ico", Err: fs.ErrPermission},
			wantIssue: issue.PermissionDeniedId,
		},
		{
			name: "other failure",
			err:  errors.New("disk on fire"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := engineError("apply color", "/data/photos", tt.err)

			var ae *issue.ActionableError
			if !errors.As(err, &ae) {
				t.Fatalf("engineError() = %T, want *issue.ActionableError", err)
			}
			if ae.Issue != tt.wantIssue {
				t.Errorf("Issue = %d, want %d", ae.Issue, tt.wantIssue)
			}
			if tt.wantIssue != 0 && len(ae.Suggestions) == 0 {
				t.Error("linked errors should carry a suggestion")
			}
			if !errors.Is(err, tt.err) {
				t.Error("engineError() should wrap the cause")
			}
			if !strings.HasPrefix(err.Error(), "failed to apply color: /data/photos") {
				t.Errorf("Error() = %q", err.Error())
			}
		})
	}
}

func TestRenderError(t *testing.T) {
	t.Parallel()

	t.Run("plain errors print nothing", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderError(&buf, errors.New("plain"), false, config.ColorSchemeAuto)
		if buf.Len() != 0 {
			t.Errorf("renderError() wrote %q for a plain error", buf.String())
		}
	})

	t.Run("suggestions and catalog entry", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderError(&buf, colorError("mauve-ish", errors.New("unknown color")), false, config.ColorSchemeDark)

		out := buf.String()
		if !strings.Contains(out, "Use a preset name") {
			t.Errorf("missing suggestion in %q", out)
		}
		if !strings.Contains(out, "Invalid color") {
			t.Errorf("missing catalog entry in %q", out)
		}
		if strings.Contains(out, "Error chain") {
			t.Error("error chain should only show in verbose mode")
		}
	})

	t.Run("verbose shows the chain", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		cause := fmt.Errorf("open folder.ico: %w", fs.ErrPermission)
		renderError(&buf, engineError("apply color", "/data", cause), true, config.ColorSchemeLight)

		if !strings.Contains(buf.String(), "Error chain") {
			t.Errorf("verbose output should include the error chain, got %q", buf.String())
		}
	})
}

func TestGlamourStyle(t *testing.T) {
	t.Parallel()

	tests := map[config.ColorScheme]string{
		config.ColorSchemeAuto:  "auto",
		config.ColorSchemeDark:  "dark",
		config.ColorSchemeLight: "light",
		"":                      "auto",
	}
	for scheme, want := range tests {
		if got := glamourStyle(scheme); got != want {
			t.Errorf("glamourStyle(%q) = %q, want %q", scheme, got, want)
		}
	}
}

func TestReportOutcome(t *testing.T) {
	t.Parallel()

	var out outcome.Outcome
	out.RecordReason("helper", outcome.ReasonTimeout, errors.New("still running after 1s"))
	out.RecordReason("notify-scoped", outcome.ReasonUnsupported, errors.ErrUnsupported)

	t.Run("ok outcome is silent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reportOutcome(&buf, outcome.Outcome{}, true, config.ColorSchemeDark)
		if buf.Len() != 0 {
			t.Errorf("reportOutcome() wrote %q for an empty outcome", buf.String())
		}
	})

	t.Run("terse", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reportOutcome(&buf, out, false, config.ColorSchemeDark)

		got := buf.String()
		for _, want := range []string{"2 best-effort step(s)", "helper (timeout)", "notify-scoped (unsupported)", "Host not supported"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
		if strings.Contains(got, "still running") {
			t.Error("error details should only show in verbose mode")
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		reportOutcome(&buf, out, true, config.ColorSchemeDark)
		if !strings.Contains(buf.String(), "helper (timeout): still running after 1s") {
			t.Errorf("verbose output missing details:\n%s", buf.String())
		}
	})

	t.Run("corrupt history renders its entry", func(t *testing.T) {
		t.Parallel()

		var corrupt outcome.Outcome
		corrupt.RecordReason(ledger.StepLoad, outcome.ReasonCorrupt, errors.New("unexpected end of JSON input"))

		var buf bytes.Buffer
		reportOutcome(&buf, corrupt, false, config.ColorSchemeDark)
		got := buf.String()
		if !strings.Contains(got, "Color history was unreadable") {
			t.Errorf("output missing the catalog entry:\n%s", got)
		}
		if strings.Contains(got, "Host not supported") {
			t.Errorf("output should only render entries for reasons present:\n%s", got)
		}
	})
}

func TestRenderHistory(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		renderHistory(&buf, nil)
		if !strings.Contains(buf.String(), "No colored folders yet.") {
			t.Errorf("renderHistory(nil) = %q", buf.String())
		}
	})

	t.Run("entries", func(t *testing.T) {
		t.Parallel()

		colored := time.Date(2026, 2, 14, 9, 5, 0, 0, time.Local)
		entries := []ledger.Entry{
			{Path: "/data/photos", ColorHex: "#E74C3C", ColoredDate: ledger.Timestamp{Time: colored}},
			{Path: "/data/legacy", ColorHex: "not-a-color", ColoredDate: ledger.Timestamp{Time: colored}},
		}

		var buf bytes.Buffer
		renderHistory(&buf, entries)

		got := buf.String()
		for _, want := range []string{"Colored folders", "/data/photos", "#E74C3C", "2026-02-14 09:05", "/data/legacy", "not-a-color"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
		if strings.Index(got, "/data/photos") > strings.Index(got, "/data/legacy") {
			t.Error("entries should keep their order")
		}
	})
}
