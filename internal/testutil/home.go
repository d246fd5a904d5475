// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"runtime"
	"testing"

	"github.com/colorit/colorit/internal/platform"
)

// SetHomeDir points the home directory of the current platform at dir
// (USERPROFILE on Windows, HOME elsewhere) and returns a cleanup function
// restoring the original value.
//
//	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
func SetHomeDir(t testing.TB, dir string) func() {
	t.Helper()

	if runtime.GOOS == platform.Windows {
		return MustSetenv(t, "USERPROFILE", dir)
	}
	return MustSetenv(t, "HOME", dir)
}
