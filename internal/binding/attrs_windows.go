// SPDX-License-Identifier: MPL-2.0

//go:build windows

package binding

import (
	"fmt"

	"golang.org/x/sys/windows"
)

type windowsAttributes struct{}

// SystemAttributes returns the host attribute store.
func SystemAttributes() Attributes { return windowsAttributes{} }

func (windowsAttributes) Get(path string) (Attr, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, fmt.Errorf("encode path %q: %w", path, err)
	}
	a, err := windows.GetFileAttributes(p)
	if err != nil {
		return 0, err
	}
	return Attr(a), nil
}

func (windowsAttributes) Set(path string, attrs Attr) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("encode path %q: %w", path, err)
	}
	return windows.SetFileAttributes(p, uint32(settable(attrs)))
}
