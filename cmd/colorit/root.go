// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootFlagValues holds the persistent flags shared by every subcommand.
type rootFlagValues struct {
	verbose    bool
	configPath string
}

// newRootCommand builds the full command tree around app.
func newRootCommand(app *App) *cobra.Command {
	flags := &rootFlagValues{}

	rootCmd := &cobra.Command{
		Use:   "colorit",
		Short: "Tint Windows folders with a custom icon color",
		Long: TitleStyle.Render("colorit") + SubtitleStyle.Render(" - tint Windows folders with a custom icon color") + `

colorit writes a generated folder icon and a desktop.ini into a folder, marks
the folder so the shell honors them and makes the shell redraw it. Every
colored folder is remembered in a short history.

` + SubtitleStyle.Render("Examples:") + `
  colorit apply ./photos red          Color a folder with a preset
  colorit apply ./photos "#8E44AD"    Color a folder with a hex value
  colorit remove ./photos             Restore the default folder icon
  colorit history                     List recently colored folders
  colorit presets                     Show the preset palette`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log every best-effort step that did not complete")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default is <config dir>/colorit/config.cue)")

	rootCmd.AddCommand(
		newApplyCommand(app, flags),
		newRemoveCommand(app, flags),
		newColorCommand(app, flags),
		newHistoryCommand(app, flags),
		newPresetsCommand(app),
		newPreviewCommand(app),
		newWatchCommand(app, flags),
		newConfigCommand(app, flags),
	)

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree. It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	rootCmd := newRootCommand(app)
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(exitFailure)
	}
}
