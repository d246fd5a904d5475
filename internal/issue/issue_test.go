// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"strings"
	"testing"
)

var allIds = []Id{
	FolderNotFoundId,
	PermissionDeniedId,
	InvalidColorId,
	ConfigLoadFailedId,
	LedgerCorruptId,
	HostNotSupportedId,
	WatchFailedId,
}

func stubRender(t *testing.T) {
	t.Helper()
	original := render
	t.Cleanup(func() { render = original })
	render = func(in string, _ string) (string, error) { return in, nil }
}

func TestId_Constants(t *testing.T) {
	seen := make(map[Id]bool)
	for _, id := range allIds {
		if seen[id] {
			t.Errorf("duplicate ID: %d", id)
		}
		seen[id] = true
	}

	if FolderNotFoundId != 1 {
		t.Errorf("FolderNotFoundId = %d, want 1", FolderNotFoundId)
	}
}

func TestIssue_Id(t *testing.T) {
	issue := Get(FolderNotFoundId)
	if issue == nil {
		t.Fatal("Get(FolderNotFoundId) returned nil")
	}
	if issue.Id() != FolderNotFoundId {
		t.Errorf("issue.Id() = %d, want %d", issue.Id(), FolderNotFoundId)
	}
}

func TestIssue_ExtLinksAreCloned(t *testing.T) {
	issue := Get(PermissionDeniedId)
	links := issue.ExtLinks()
	if len(links) == 0 {
		t.Fatal("PermissionDenied issue should carry an external link")
	}

	original := links[0]
	links[0] = "modified"
	if got := issue.ExtLinks()[0]; got != original {
		t.Errorf("ExtLinks()[0] = %q after mutating the copy, want %q", got, original)
	}
}

func TestIssue_DocLinksNil(t *testing.T) {
	if links := Get(InvalidColorId).DocLinks(); links != nil {
		t.Errorf("DocLinks() = %v, want nil", links)
	}
}

func TestGet(t *testing.T) {
	tests := []struct {
		id       Id
		wantNil  bool
		contains string
	}{
		{FolderNotFoundId, false, "Folder not found"},
		{PermissionDeniedId, false, "Permission denied"},
		{InvalidColorId, false, "Invalid color"},
		{ConfigLoadFailedId, false, "Failed to load configuration"},
		{LedgerCorruptId, false, "history was unreadable"},
		{HostNotSupportedId, false, "Host not supported"},
		{WatchFailedId, false, "watcher stopped"},
		{Id(9999), true, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.contains, func(t *testing.T) {
			issue := Get(tt.id)

			if tt.wantNil {
				if issue != nil {
					t.Errorf("Get(%d) should return nil", tt.id)
				}
				return
			}

			if issue == nil {
				t.Fatalf("Get(%d) returned nil", tt.id)
			}
			if !strings.Contains(string(issue.MarkdownMsg()), tt.contains) {
				t.Errorf("Get(%d).MarkdownMsg() should contain %q", tt.id, tt.contains)
			}
		})
	}
}

func TestValues(t *testing.T) {
	issues := Values()

	if len(issues) != len(allIds) {
		t.Fatalf("Values() returned %d issues, want %d", len(issues), len(allIds))
	}
	for i, issue := range issues {
		if issue.Id() != allIds[i] {
			t.Errorf("Values()[%d].Id() = %d, want %d", i, issue.Id(), allIds[i])
		}
	}
}

func TestIssue_Render(t *testing.T) {
	stubRender(t)

	rendered, err := Get(InvalidColorId).Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "colorit presets") {
		t.Error("Render() output should mention 'colorit presets'")
	}
	if strings.Contains(rendered, "See also") {
		t.Error("Render() without links should not contain 'See also'")
	}
}

func TestIssue_Render_WithLinks(t *testing.T) {
	stubRender(t)

	testIssue := &Issue{
		id:       Id(9999),
		mdMsg:    "# Test Issue\n\nThis is a test.",
		docLinks: []HttpLink{"https://docs.example.com"},
		extLinks: []HttpLink{"https://external.example.com"},
	}

	rendered, err := testIssue.Render("")
	if err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(rendered, "See also") {
		t.Error("Render() with links should contain 'See also'")
	}
	if !strings.Contains(rendered, "<https://docs.example.com>") || !strings.Contains(rendered, "<https://external.example.com>") {
		t.Errorf("Render() should list both links, got:\n%s", rendered)
	}
}

func TestAllIssuesAreRenderable(t *testing.T) {
	stubRender(t)

	for _, issue := range Values() {
		if issue.MarkdownMsg() == "" {
			t.Errorf("Issue %d has empty MarkdownMsg", issue.Id())
		}
		rendered, err := issue.Render("")
		if err != nil {
			t.Errorf("Issue %d failed to render: %v", issue.Id(), err)
		}
		if rendered == "" {
			t.Errorf("Issue %d rendered to empty string", issue.Id())
		}
	}
}
