// SPDX-License-Identifier: MPL-2.0

// Package config handles colorit configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/colorit/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/colorit/config.cue on macOS, %APPDATA%\colorit\config.cue
// on Windows). It covers the history file location, the artifact file names written into
// colored folders, the cache-invalidation timings and helper, UI settings and the guard
// watcher's debounce.
//
// Files are validated against the embedded config_schema.cue before being merged over
// the defaults; range checks CUE cannot express are done by Config.Validate.
package config
