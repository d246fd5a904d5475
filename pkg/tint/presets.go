// SPDX-License-Identifier: MPL-2.0

package tint

import "strings"

// Preset is a named palette entry.
type Preset struct {
	Name  string
	Color ColorSpec
}

// DefaultCustom is the starting color offered when picking a custom color.
var DefaultCustom = RGB(52, 152, 219)

// Presets is the built-in palette, in display order.
var Presets = []Preset{
	{"Red", RGB(231, 76, 60)},
	{"Orange", RGB(230, 126, 34)},
	{"Yellow", RGB(241, 196, 15)},
	{"Green", RGB(46, 204, 113)},
	{"Teal", RGB(26, 188, 156)},
	{"Blue", RGB(52, 152, 219)},
	{"Purple", RGB(155, 89, 182)},
	{"Light Gray", RGB(236, 240, 241)},
	{"Gray", RGB(149, 165, 166)},
	{"Dark Blue", RGB(52, 73, 94)},
	{"Pink", RGB(241, 148, 138)},
	{"Light Blue", RGB(133, 193, 233)},
}

// Lookup finds a preset by name. Matching ignores case, spaces, dashes and
// underscores, so "light-blue", "LightBlue" and "Light Blue" are equivalent.
func Lookup(name string) (ColorSpec, bool) {
	key := presetKey(name)
	if key == "" {
		return ColorSpec{}, false
	}
	for _, p := range Presets {
		if presetKey(p.Name) == key {
			return p.Color, true
		}
	}
	return ColorSpec{}, false
}

func presetKey(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
