// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/colorit/colorit/internal/iconsynth"
	"github.com/colorit/colorit/pkg/ico"
	"github.com/colorit/colorit/pkg/tint"

	"github.com/spf13/cobra"
)

func newPresetsCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "Show the preset palette",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			width := 0
			for _, p := range tint.Presets {
				width = max(width, len(p.Name))
			}
			for _, p := range tint.Presets {
				fmt.Fprintf(app.stdout, "  %s  %s\n", swatch(p.Color, p.Name+strings.Repeat(" ", width-len(p.Name))), p.Color.Hex())
			}
			fmt.Fprintf(app.stdout, "\n%s\n", SubtitleStyle.Render("Names are case-insensitive; any #RRGGBB value works too."))
			return nil
		},
	}
}

func newPreviewCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <color> <out.ico>",
		Short: "Write a colored folder icon to a file without applying it",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			colorArg, outPath := args[0], args[1]

			c, err := tint.Parse(colorArg)
			if err != nil {
				err = colorError(colorArg, err)
				renderError(app.stderr, err, false, app.colorScheme)
				return err
			}

			container, err := iconsynth.Synthesize(c)
			if err != nil {
				return fmt.Errorf("synthesize icon: %w", err)
			}
			data, err := ico.Encode(container)
			if err != nil {
				return fmt.Errorf("encode icon: %w", err)
			}
			if err := os.WriteFile(outPath, data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", outPath, err)
			}

			fmt.Fprintf(app.stdout, "%s Wrote %s %s (%d bytes, sizes %v)\n",
				SuccessStyle.Render("✓"), PathStyle.Render(outPath), swatch(c, c.Hex()), len(data), container.Sizes())
			return nil
		},
	}
}
