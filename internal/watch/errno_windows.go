// SPDX-License-Identifier: MPL-2.0

//go:build windows

package watch

import "syscall"

// fatalErrnos end Run: ERROR_TOO_MANY_OPEN_FILES and ERROR_NOT_ENOUGH_MEMORY.
// ERROR_INVALID_HANDLE is left out; it is what a deleted guarded folder
// produces, and classify already drops such folders.
var fatalErrnos = []syscall.Errno{4, 8}
