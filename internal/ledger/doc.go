// SPDX-License-Identifier: MPL-2.0

// Package ledger persists the list of folders that carry a color override.
//
// The ledger is an ordered, capacity-bounded sequence of entries keyed by
// case-insensitive path. New paths are inserted at the front and the tail is
// evicted past Capacity; updating an existing path keeps its position. Every
// mutation rewrites the whole backing file. List drops entries whose folder
// no longer exists and persists the pruned sequence.
//
// A Ledger is not safe for concurrent use by multiple processes, and callers
// sharing one across goroutines must serialize access themselves.
package ledger
