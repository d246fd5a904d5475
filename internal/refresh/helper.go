// SPDX-License-Identifier: MPL-2.0

package refresh

import (
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"time"
)

// DefaultHelperCommand asks the shell to rebuild its icon cache.
var DefaultHelperCommand = []string{"ie4uinit.exe", "-show"}

var (
	// ErrEmptyCommand is returned when a helper command has no program.
	ErrEmptyCommand = errors.New("helper command is empty")
	// ErrHelperTimeout marks a helper that did not exit within its wait.
	ErrHelperTimeout = errors.New("helper did not exit in time")
)

type (
	// Helper starts the OS cache-rebuild process.
	Helper interface {
		// Start launches the process and returns a channel that receives its
		// exit result exactly once.
		Start() (<-chan error, error)
	}

	// CommandHelper runs an external program.
	CommandHelper struct {
		argv []string
	}

	// Clock is the time source for the bounded helper wait and the fixed
	// delays between steps.
	Clock interface {
		After(d time.Duration) <-chan time.Time
		Sleep(d time.Duration)
	}

	realClock struct{}
)

// NewCommandHelper returns a Helper running argv[0] with the remaining
// arguments.
func NewCommandHelper(argv []string) (*CommandHelper, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	return &CommandHelper{argv: append([]string(nil), argv...)}, nil
}

// Start launches the program. A program that cannot be found is reported as
// fs.ErrNotExist. The process is not killed if the caller stops waiting.
func (h *CommandHelper) Start() (<-chan error, error) {
	cmd := exec.Command(h.argv[0], h.argv[1:]...)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, fmt.Errorf("start %s: %w: %w", h.argv[0], fs.ErrNotExist, err)
		}
		return nil, fmt.Errorf("start %s: %w", h.argv[0], err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	return done, nil
}

// String returns the command line.
func (h *CommandHelper) String() string { return fmt.Sprint(h.argv) }

func (realClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (realClock) Sleep(d time.Duration)                  { time.Sleep(d) }
