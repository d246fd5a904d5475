// SPDX-License-Identifier: MPL-2.0

package cmd

import "testing"

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v0.4.0"
		Commit = "9f1c2ab"
		BuildDate = "2026-03-01T08:30:00Z"

		got := getVersionString()
		want := "v0.4.0 (commit: 9f1c2ab, built: 2026-03-01T08:30:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("dev build", func(t *testing.T) {
		origVersion := Version
		t.Cleanup(func() { Version = origVersion })

		Version = "dev"
		if got, want := getVersionString(), "dev (built from source)"; got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func TestRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() error: %v", err)
	}
	root := newRootCommand(app)

	for _, name := range []string{"apply", "remove", "reset", "color", "history", "presets", "preview", "watch", "config"} {
		found, _, err := root.Find([]string{name})
		if err != nil || found == root {
			t.Errorf("subcommand %q not registered (err = %v)", name, err)
		}
	}
	for _, flag := range []string{"verbose", "config"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s not registered", flag)
		}
	}
}
