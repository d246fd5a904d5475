// SPDX-License-Identifier: MPL-2.0

package tint

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrInvalidChannel is the sentinel error wrapped by InvalidChannelError.
	ErrInvalidChannel = errors.New("invalid color channel")
	// ErrInvalidColor is the sentinel error wrapped by InvalidColorError.
	ErrInvalidColor = errors.New("invalid color")
)

type (
	// ColorSpec is an 8-bit RGBA color used to tint a folder.
	// Build values with RGB, New or Parse; the zero value is transparent black.
	ColorSpec struct {
		R, G, B, A uint8
	}

	// InvalidChannelError is returned when a channel value lies outside [0,255].
	InvalidChannelError struct {
		Channel string
		Value   int
	}

	// InvalidColorError is returned when a color string is neither a hex
	// color nor a known preset name.
	InvalidColorError struct {
		Value string
	}
)

// Error implements the error interface for InvalidChannelError.
func (e *InvalidChannelError) Error() string {
	return fmt.Sprintf("invalid %s channel %d (must be in range 0-255)", e.Channel, e.Value)
}

// Unwrap returns ErrInvalidChannel for errors.Is() compatibility.
func (e *InvalidChannelError) Unwrap() error { return ErrInvalidChannel }

// Error implements the error interface for InvalidColorError.
func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %q: want #RGB, #RRGGBB, #RRGGBBAA or a preset name", e.Value)
}

// Unwrap returns ErrInvalidColor for errors.Is() compatibility.
func (e *InvalidColorError) Unwrap() error { return ErrInvalidColor }

// RGB returns an opaque ColorSpec.
func RGB(r, g, b uint8) ColorSpec {
	return ColorSpec{R: r, G: g, B: b, A: 0xff}
}

// New builds an opaque ColorSpec from untyped integer channels, rejecting
// anything outside [0,255].
func New(r, g, b int) (ColorSpec, error) {
	for _, ch := range []struct {
		name string
		v    int
	}{{"red", r}, {"green", g}, {"blue", b}} {
		if ch.v < 0 || ch.v > 255 {
			return ColorSpec{}, &InvalidChannelError{Channel: ch.name, Value: ch.v}
		}
	}
	return RGB(uint8(r), uint8(g), uint8(b)), nil
}

// WithAlpha returns a copy of c with the alpha channel replaced.
func (c ColorSpec) WithAlpha(a uint8) ColorSpec {
	c.A = a
	return c
}

// Opaque reports whether the alpha channel is fully opaque.
func (c ColorSpec) Opaque() bool { return c.A == 0xff }

// NRGBA converts c to the standard library's non-premultiplied color.
func (c ColorSpec) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Hex formats c as #RRGGBB, or #RRGGBBAA when c is not opaque.
func (c ColorSpec) Hex() string {
	if c.Opaque() {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// String returns the hex form of c.
func (c ColorSpec) String() string { return c.Hex() }

// Parse reads a color from a preset name or a hex string (#RGB, #RRGGBB or
// #RRGGBBAA; the leading '#' is optional).
func Parse(s string) (ColorSpec, error) {
	in := strings.TrimSpace(s)
	if p, ok := Lookup(in); ok {
		return p, nil
	}

	hex := strings.TrimPrefix(in, "#")
	if !isHexDigits(hex) {
		return ColorSpec{}, &InvalidColorError{Value: s}
	}

	var alpha uint8 = 0xff
	switch len(hex) {
	case 3, 6:
	case 8:
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return ColorSpec{}, &InvalidColorError{Value: s}
		}
		alpha = uint8(a)
		hex = hex[:6]
	default:
		return ColorSpec{}, &InvalidColorError{Value: s}
	}

	cf, err := colorful.Hex("#" + hex)
	if err != nil {
		return ColorSpec{}, &InvalidColorError{Value: s}
	}
	r, g, b := cf.RGB255()
	return ColorSpec{R: r, G: g, B: b, A: alpha}, nil
}

func isHexDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Darken scales every color channel by (1-f), truncating toward zero.
// Alpha is preserved. f is clamped to [0,1].
func Darken(c ColorSpec, f float64) ColorSpec {
	f = clampFactor(f)
	return ColorSpec{
		R: channel(float64(c.R) * (1 - f)),
		G: channel(float64(c.G) * (1 - f)),
		B: channel(float64(c.B) * (1 - f)),
		A: c.A,
	}
}

// Lighten moves every color channel toward 255 by the fraction f, truncating
// toward zero. Alpha is preserved. f is clamped to [0,1].
func Lighten(c ColorSpec, f float64) ColorSpec {
	f = clampFactor(f)
	return ColorSpec{
		R: channel(float64(c.R) + (255-float64(c.R))*f),
		G: channel(float64(c.G) + (255-float64(c.G))*f),
		B: channel(float64(c.B) + (255-float64(c.B))*f),
		A: c.A,
	}
}

// Blend interpolates linearly in RGB between a (t=0) and b (t=1).
func Blend(a, b ColorSpec, t float64) ColorSpec {
	t = clampFactor(t)
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	return ColorSpec{R: r, G: g, B: bl, A: channel(float64(a.A) + (float64(b.A)-float64(a.A))*t + 0.5)}
}

// Luminance returns the perceived brightness of c in [0,1].
func Luminance(c ColorSpec) float64 {
	return (0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)) / 255
}

// ContrastText returns black for light backgrounds and white for dark ones.
func ContrastText(bg ColorSpec) ColorSpec {
	if Luminance(bg) > 0.5 {
		return RGB(0, 0, 0)
	}
	return RGB(0xff, 0xff, 0xff)
}

func clampFactor(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func channel(v float64) uint8 {
	n := int(v)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}
