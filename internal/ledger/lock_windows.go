// SPDX-License-Identifier: MPL-2.0

//go:build windows

package ledger

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"
)

// fileLock is a blocking exclusive byte-range lock on the ledger's lock
// file. Windows releases it when the handle closes.
type fileLock struct {
	file *os.File
}

func lockFile(path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockMode)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	ol := new(windows.Overlapped)
	if err := windows.LockFileEx(windows.Handle(f.Fd()), windows.LOCKFILE_EXCLUSIVE_LOCK, 0, 1, 0, ol); err != nil {
		f.Close()
		return nil, fmt.Errorf("lock %s: %w", path, err)
	}
	return &fileLock{file: f}, nil
}

func (l *fileLock) release() error {
	ol := new(windows.Overlapped)
	if err := windows.UnlockFileEx(windows.Handle(l.file.Fd()), 0, 1, 0, ol); err != nil {
		l.file.Close()
		return fmt.Errorf("unlock %s: %w", l.file.Name(), err)
	}
	return l.file.Close()
}
