// SPDX-License-Identifier: MPL-2.0

// Package platform holds the host-specific facts shared by configuration and
// the folder binding: OS names and the file names Windows refuses to create.
package platform

import "strings"

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// reservedNames are device names Windows reserves regardless of extension.
var reservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// IsReservedName reports whether name, ignoring its extension and case, is a
// Windows device name such as "NUL" or "com1.ico".
func IsReservedName(name string) bool {
	base := strings.ToUpper(strings.TrimSpace(name))
	if idx := strings.Index(base, "."); idx != -1 {
		base = base[:idx]
	}
	return reservedNames[base]
}

// HasIllegalChars reports whether name contains a character Windows forbids
// in file names, a control character included.
func HasIllegalChars(name string) bool {
	for _, r := range name {
		if r < 0x20 || strings.ContainsRune(`<>:"/\|?*`, r) {
			return true
		}
	}
	return false
}
