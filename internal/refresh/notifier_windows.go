// SPDX-License-Identifier: MPL-2.0

//go:build windows

package refresh

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// SHChangeNotify event ids and flags (shlobj_core.h).
const (
	shcneUpdateDir     = 0x00001000
	shcneUpdateItem    = 0x00002000
	shcneAssocChanged  = 0x08000000
	shcneAllEvents     = 0x7FFFFFFF
	shcnfIDList        = 0x0000
	shcnfPathW         = 0x0005
	shcnfFlush         = 0x1000
	shcnfFlushNoWait   = 0x3000
	wmKeyDown          = 0x0100
	wmKeyUp            = 0x0101
	vkF5               = 0x74
	classNameBufLength = 256
)

var (
	shell32            = windows.NewLazySystemDLL("shell32.dll")
	procSHChangeNotify = shell32.NewProc("SHChangeNotify")

	user32            = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW   = user32.NewProc("FindWindowW")
	procFindWindowExW = user32.NewProc("FindWindowExW")
	procPostMessageW  = user32.NewProc("PostMessageW")

	// File-manager top-level window classes and the content control inside.
	fileManagerClasses = map[string]bool{"CabinetWClass": true, "ExploreWClass": true}
	contentClass       = "ShellTabWindowClass"
	desktopClass       = "Progman"

	// EnumWindows callbacks cannot be released, so one is shared.
	enumMu       sync.Mutex
	enumFound    []windows.HWND
	enumCallback = windows.NewCallback(func(hwnd windows.HWND, _ uintptr) uintptr {
		buf := make([]uint16, classNameBufLength)
		n, err := windows.GetClassName(hwnd, &buf[0], int32(len(buf)))
		if err == nil && fileManagerClasses[windows.UTF16ToString(buf[:n])] {
			enumFound = append(enumFound, hwnd)
		}
		return 1
	})
)

// DefaultCacheDir returns %LOCALAPPDATA%\Microsoft\Windows\Explorer, where
// the shell keeps its icon and thumbnail cache databases.
func DefaultCacheDir() string {
	dir, err := windows.KnownFolderPath(windows.FOLDERID_LocalAppData, 0)
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "Microsoft", "Windows", "Explorer")
}

// NotifyScoped sends SHChangeNotify for path, once per event in ev.
func (n *ShellNotifier) NotifyScoped(path string, ev ChangeEvent) error {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return fmt.Errorf("encode path %q: %w", path, err)
	}
	if ev&EventItemUpdated != 0 {
		shChangeNotify(shcneUpdateItem, shcnfPathW|shcnfFlushNoWait, uintptr(unsafe.Pointer(p)))
	}
	if ev&EventDirUpdated != 0 {
		shChangeNotify(shcneUpdateDir, shcnfPathW|shcnfFlushNoWait, uintptr(unsafe.Pointer(p)))
	}
	return nil
}

// NotifyGlobal sends a shell-wide SHChangeNotify.
func (n *ShellNotifier) NotifyGlobal(ev GlobalEvent) error {
	switch ev {
	case GlobalAssocChanged:
		shChangeNotify(shcneAssocChanged, shcnfIDList|shcnfFlush, 0)
	case GlobalFlushAll:
		shChangeNotify(shcneAllEvents, shcnfFlush, 0)
	default:
		return fmt.Errorf("notify %v: %w", ev, errors.ErrUnsupported)
	}
	return nil
}

// RefreshOpenViews posts an F5 key press to every open file-manager window,
// its content control, and the desktop. The shell offers no cheap way to map
// a window to the folder it shows, so path is not used to filter.
func (n *ShellNotifier) RefreshOpenViews(_ string) error {
	if err := procPostMessageW.Find(); err != nil {
		return err
	}

	var targets []windows.HWND
	for _, top := range fileManagerWindows() {
		targets = append(targets, top)
		if child := findWindowEx(top, contentClass); child != 0 {
			targets = append(targets, child)
		}
	}
	if desktop := findWindow(desktopClass); desktop != 0 {
		targets = append(targets, desktop)
	}

	for _, hwnd := range targets {
		pressF5(hwnd)
	}
	n.logger.Debug("refreshed open views", "windows", len(targets))
	return nil
}

func fileManagerWindows() []windows.HWND {
	enumMu.Lock()
	defer enumMu.Unlock()
	enumFound = nil
	_ = windows.EnumWindows(enumCallback, nil)
	found := enumFound
	enumFound = nil
	return found
}

func shChangeNotify(event, flags uint32, item uintptr) {
	// SHChangeNotify returns void; Call's error is a stale GetLastError.
	_, _, _ = procSHChangeNotify.Call(uintptr(event), uintptr(flags), item, 0)
}

func findWindow(class string) windows.HWND {
	c, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0
	}
	r, _, _ := procFindWindowW.Call(uintptr(unsafe.Pointer(c)), 0)
	return windows.HWND(r)
}

func findWindowEx(parent windows.HWND, class string) windows.HWND {
	c, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0
	}
	r, _, _ := procFindWindowExW.Call(uintptr(parent), 0, uintptr(unsafe.Pointer(c)), 0)
	return windows.HWND(r)
}

func pressF5(hwnd windows.HWND) {
	_, _, _ = procPostMessageW.Call(uintptr(hwnd), wmKeyDown, vkF5, 0)
	_, _, _ = procPostMessageW.Call(uintptr(hwnd), wmKeyUp, vkF5, 0)
}
