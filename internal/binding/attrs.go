// SPDX-License-Identifier: MPL-2.0

package binding

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Attribute flags. Values mirror the Windows FILE_ATTRIBUTE_* constants so the
// Windows store can pass them through unchanged.
const (
	AttrReadOnly  Attr = 0x1
	AttrHidden    Attr = 0x2
	AttrSystem    Attr = 0x4
	AttrDirectory Attr = 0x10
	AttrNormal    Attr = 0x80
)

type (
	// Attr is a set of filesystem attribute flags.
	Attr uint32

	// Attributes reads and writes filesystem attribute flags.
	Attributes interface {
		Get(path string) (Attr, error)
		Set(path string, attrs Attr) error
	}

	// MemoryAttributes keeps attribute flags in process memory, keyed by
	// cleaned path. Paths must exist on disk to be read or written, and a
	// path that no longer exists loses its flags. It backs hosts without
	// native attribute flags and is used by tests.
	MemoryAttributes struct {
		mu    sync.Mutex
		attrs map[string]Attr
	}
)

// Has reports whether every flag in mask is set.
func (a Attr) Has(mask Attr) bool { return a&mask == mask }

// String renders the set flags, e.g. "hidden|system".
func (a Attr) String() string {
	names := []struct {
		flag Attr
		name string
	}{
		{AttrReadOnly, "readonly"},
		{AttrHidden, "hidden"},
		{AttrSystem, "system"},
		{AttrDirectory, "directory"},
		{AttrNormal, "normal"},
	}
	var parts []string
	for _, n := range names {
		if a&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("0x%x", uint32(a))
	}
	return strings.Join(parts, "|")
}

// settable drops the directory flag, which only the file type controls, and
// keeps AttrNormal only when no other flag is set.
func settable(attrs Attr) Attr {
	attrs &^= AttrDirectory
	if attrs&^AttrNormal != 0 {
		return attrs &^ AttrNormal
	}
	return AttrNormal
}

// NewMemoryAttributes returns an empty in-memory attribute store.
func NewMemoryAttributes() *MemoryAttributes {
	return &MemoryAttributes{attrs: make(map[string]Attr)}
}

// Get returns the stored flags for path, or the default flags of a freshly
// created file or directory.
func (m *MemoryAttributes) Get(path string) (Attr, error) {
	key := filepath.Clean(path)
	info, err := os.Stat(key)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		delete(m.attrs, key)
		return 0, err
	}
	if a, ok := m.attrs[key]; ok {
		return a, nil
	}
	if info.IsDir() {
		return AttrDirectory, nil
	}
	return AttrNormal, nil
}

// Set stores attrs for path. The directory flag follows the file type, as it
// does on Windows.
func (m *MemoryAttributes) Set(path string, attrs Attr) error {
	key := filepath.Clean(path)
	info, err := os.Stat(key)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		delete(m.attrs, key)
		return err
	}
	attrs = settable(attrs)
	if info.IsDir() {
		attrs = attrs&^AttrNormal | AttrDirectory
	}
	m.attrs[key] = attrs
	return nil
}

// Forget drops the stored flags of path.
func (m *MemoryAttributes) Forget(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.attrs, filepath.Clean(path))
}
