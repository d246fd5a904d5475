// SPDX-License-Identifier: MPL-2.0

// Package watch guards colored folders against losing their override.
//
// A Watcher observes a set of folders and notices when one of the override
// artifacts inside them is deleted or renamed away. Affected folders are
// collected over a debounce window and handed to a callback once, so a burst
// of deletions from a single cleanup results in a single re-apply per folder.
package watch
