// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"github.com/colorit/colorit/pkg/tint"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all CLI output. Tuned for dark terminal backgrounds.
const (
	// ColorPrimary is purple, used for titles.
	ColorPrimary = lipgloss.Color("#7C3AED")
	// ColorMuted is gray, used for secondary text.
	ColorMuted = lipgloss.Color("#6B7280")
	// ColorSuccess is green, used for completed actions.
	ColorSuccess = lipgloss.Color("#10B981")
	// ColorError is red.
	ColorError = lipgloss.Color("#EF4444")
	// ColorWarning is amber, used for skipped best-effort steps.
	ColorWarning = lipgloss.Color("#F59E0B")
	// ColorHighlight is blue, used for paths and keys.
	ColorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// TitleStyle is for primary headers and section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// SubtitleStyle is for secondary headers and descriptions.
	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle is for success messages and positive indicators.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// ErrorStyle is for error messages and failure indicators.
	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorError)

	// WarningStyle is for warning messages and caution indicators.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// PathStyle is for folder paths and config keys.
	PathStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight)

	swatchStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// swatch renders label on a block of color c, with black or white text
// chosen for contrast. Translucent colors are shown at full opacity.
func swatch(c tint.ColorSpec, label string) string {
	opaque := c.WithAlpha(0xff)
	return swatchStyle.
		Background(lipgloss.Color(opaque.Hex())).
		Foreground(lipgloss.Color(tint.ContrastText(opaque).Hex())).
		Render(label)
}
