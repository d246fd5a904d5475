// SPDX-License-Identifier: MPL-2.0

// Package ico encodes and decodes the multi-resolution icon container used
// for folder overrides.
//
// Layout (all integers little-endian):
//
//	header     6 bytes   reserved=0, type=1, count
//	directory  16 bytes per image
//	             width, height (0 encodes 256), color count=0, reserved=0,
//	             planes=1, bits per pixel=32, payload length, payload offset
//	payloads   concatenated in directory order
//
// The first payload starts right after the directory and every following
// payload starts where the previous one ends; the last payload ends at the
// end of the file. Encode and Decode are inverse operations for any valid
// Container.
package ico
