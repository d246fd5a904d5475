// SPDX-License-Identifier: MPL-2.0

// Package binding realizes and reverses the on-disk shell override of a folder:
// an icon container file, a desktop.ini descriptor pointing at it, and the
// attribute flags the shell requires before it honors a per-folder icon.
//
// Apply stops at the first failing step and leaves whatever it already wrote
// in place. Remove tolerates any subset of the artifacts being present and
// never fails; its per-step problems are reported through an outcome.Outcome.
package binding
