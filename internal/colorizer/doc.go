// SPDX-License-Identifier: MPL-2.0

// Package colorizer orchestrates folder coloring.
//
// Apply runs synthesis, binding, invalidation and the ledger update in that
// order. Synthesis and binding failures are returned and stop the operation.
// Once the override is bound, invalidation and ledger problems only show up
// in the returned outcome.Outcome. Remove never returns an error.
package colorizer
