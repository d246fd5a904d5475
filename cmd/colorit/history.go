// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/colorit/colorit/internal/ledger"
	"github.com/colorit/colorit/pkg/tint"

	"github.com/spf13/cobra"
)

// historyDateLayout is the local date format of the history listing.
const historyDateLayout = "2006-01-02 15:04"

func newHistoryCommand(app *App, flags *rootFlagValues) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recently colored folders",
		Long: `List recently colored folders, most recent first.

Folders that no longer exist are dropped from the history as it is listed.
At most 50 folders are remembered.`,
		Args: cobra.NoArgs,
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, _ []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}
			reportOutcome(app.stderr, s.ledgerOpen, flags.verbose, app.colorScheme)

			entries, out := s.engine.ListHistory()
			renderHistory(app.stdout, entries)
			reportOutcome(app.stderr, out, flags.verbose, app.colorScheme)
			return nil
		}),
	}

	historyCmd.AddCommand(&cobra.Command{
		Use:   "forget <folder>",
		Short: "Drop a folder from the history without touching it",
		Args:  cobra.ExactArgs(1),
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, args []string) error {
			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}
			s.exclusive(func() { err = s.engine.Forget(args[0]) })
			if err != nil {
				return err
			}
			fmt.Fprintf(app.stdout, "%s Forgot %s\n", SuccessStyle.Render("✓"), PathStyle.Render(args[0]))
			return nil
		}),
	})

	return historyCmd
}

func renderHistory(w io.Writer, entries []ledger.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, SubtitleStyle.Render("No colored folders yet."))
		return
	}

	fmt.Fprintln(w, TitleStyle.Render("Colored folders"))
	for _, e := range entries {
		label := e.ColorHex
		if c, err := tint.Parse(e.ColorHex); err == nil {
			label = swatch(c, c.Hex())
		}
		fmt.Fprintf(w, "  %s  %s  %s\n",
			label,
			SubtitleStyle.Render(e.ColoredDate.In(time.Local).Format(historyDateLayout)),
			PathStyle.Render(e.Path))
	}
}
