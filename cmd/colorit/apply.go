// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/colorit/colorit/internal/outcome"
	"github.com/colorit/colorit/pkg/tint"

	"github.com/spf13/cobra"
)

func newApplyCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <folder> <color>",
		Short: "Color a folder",
		Long: `Color a folder with a preset name or a hex value.

The folder receives a generated icon and a desktop.ini, is marked so the
shell reads them, and the shell is asked to redraw it. Applying again
replaces the previous color.`,
		Example: `  colorit apply ./photos red
  colorit apply "C:\Users\me\Projects" "light blue"
  colorit apply ./archive "#7F8C8D"`,
		Args: cobra.ExactArgs(2),
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, args []string) error {
			folder, colorArg := args[0], args[1]

			c, err := tint.Parse(colorArg)
			if err != nil {
				return colorError(colorArg, err)
			}

			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}
			reportOutcome(app.stderr, s.ledgerOpen, flags.verbose, app.colorScheme)

			var out outcome.Outcome
			s.exclusive(func() { out, err = s.engine.Apply(cmd.Context(), folder, c) })
			if err != nil {
				return engineError("apply color", folder, err)
			}

			fmt.Fprintf(app.stdout, "%s Colored %s %s\n",
				SuccessStyle.Render("✓"), PathStyle.Render(folder), swatch(c, c.Hex()))
			reportOutcome(app.stderr, out, flags.verbose, app.colorScheme)
			return nil
		}),
	}
}

func newRemoveCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <folder>",
		Aliases: []string{"reset"},
		Short:   "Restore a folder's default icon",
		Long: `Restore a folder's default icon.

Deletes the generated icon and desktop.ini, clears the folder's system
attribute and forgets the folder. Missing pieces are skipped, so remove is
safe to run on a folder that was never colored.`,
		Args: cobra.ExactArgs(1),
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, args []string) error {
			folder := args[0]

			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}
			reportOutcome(app.stderr, s.ledgerOpen, flags.verbose, app.colorScheme)

			var out outcome.Outcome
			s.exclusive(func() { out, err = s.engine.Remove(cmd.Context(), folder) })
			if err != nil {
				return engineError("remove color", folder, err)
			}

			fmt.Fprintf(app.stdout, "%s Restored %s\n", SuccessStyle.Render("✓"), PathStyle.Render(folder))
			reportOutcome(app.stderr, out, flags.verbose, app.colorScheme)
			return nil
		}),
	}
}

func newColorCommand(app *App, flags *rootFlagValues) *cobra.Command {
	return &cobra.Command{
		Use:   "color <folder>",
		Short: "Show the recorded color of a folder",
		Long: `Show the color recorded for a folder in the history.

Exits with status 3 when the folder has no recorded color.`,
		Args: cobra.ExactArgs(1),
		RunE: withErrorRendering(app, flags, func(cmd *cobra.Command, args []string) error {
			folder := args[0]

			s, err := app.session(cmd.Context(), flags)
			if err != nil {
				return err
			}

			c, ok := s.engine.ColorFor(folder)
			if !ok {
				fmt.Fprintf(app.stdout, "%s %s\n", PathStyle.Render(folder), SubtitleStyle.Render("(no color recorded)"))
				return &ExitError{Code: exitNoColor}
			}

			fmt.Fprintf(app.stdout, "%s %s\n", PathStyle.Render(folder), swatch(c, c.Hex()))
			return nil
		}),
	}
}
