// SPDX-License-Identifier: MPL-2.0

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd

package ledger

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// fileLock is a blocking exclusive flock on the ledger's lock file. The
// kernel drops it when the descriptor closes, including on crash.
type fileLock struct {
	file *os.File
}

func lockFile(path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockMode)
	if err != nil {
		return nil, fmt.Errorf("open lock file %s: %w", path, err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		f.Close()
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}
	return &fileLock{file: f}, nil
}

func (l *fileLock) release() error {
	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		l.file.Close()
		return fmt.Errorf("unlock %s: %w", l.file.Name(), err)
	}
	return l.file.Close()
}
