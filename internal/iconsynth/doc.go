// SPDX-License-Identifier: MPL-2.0

// Package iconsynth renders the tinted folder glyph and bundles it into a
// multi-resolution icon container.
//
// Synthesis is a pure function of the input color: the glyph is rasterized
// once at 256x256, resampled with a Catmull-Rom filter to the smaller
// canonical sizes, PNG-encoded, and assembled in ico.CanonicalSizes order.
// Nothing is random, so equal colors always produce byte-identical output.
package iconsynth
