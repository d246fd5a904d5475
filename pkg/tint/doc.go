// SPDX-License-Identifier: MPL-2.0

// Package tint provides the ColorSpec value used to tint folders, together with
// the shade helpers (Darken, Lighten), the hex codec used by the color ledger,
// and the built-in preset palette.
//
// ColorSpec is an immutable 8-bit RGBA value. Hex serialization is lossless for
// 24-bit colors: Parse(c.Hex()) == c for every opaque c.
package tint
