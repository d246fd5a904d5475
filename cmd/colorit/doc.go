// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the colorit command tree. Handlers parse arguments,
// build the engine through App and render results; folder coloring itself
// lives in internal/colorizer.
package cmd
