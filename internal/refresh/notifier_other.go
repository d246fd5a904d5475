// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package refresh

import (
	"errors"
	"fmt"
)

// DefaultCacheDir returns "" on hosts without a shell icon cache.
func DefaultCacheDir() string { return "" }

// NotifyScoped is unsupported on this host.
func (n *ShellNotifier) NotifyScoped(path string, ev ChangeEvent) error {
	return fmt.Errorf("notify %v for %s: %w", ev, path, errors.ErrUnsupported)
}

// NotifyGlobal is unsupported on this host.
func (n *ShellNotifier) NotifyGlobal(ev GlobalEvent) error {
	return fmt.Errorf("notify %v: %w", ev, errors.ErrUnsupported)
}

// RefreshOpenViews is unsupported on this host.
func (n *ShellNotifier) RefreshOpenViews(path string) error {
	return fmt.Errorf("refresh views of %s: %w", path, errors.ErrUnsupported)
}
