// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package binding

// SystemAttributes returns the host attribute store. Hosts without native
// attribute flags get a process-local store.
func SystemAttributes() Attributes { return NewMemoryAttributes() }
