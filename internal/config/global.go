// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride replaces the platform config directory when non-empty.
// os.UserHomeDir ignores HOME on some platforms, so tests set this instead.
var configDirOverride string

// Reset clears test overrides. Call from test cleanup to restore defaults.
func Reset() {
	configDirOverride = ""
}

// SetConfigDirOverride makes ConfigDir return dir until Reset.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}
