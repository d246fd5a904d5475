// SPDX-License-Identifier: MPL-2.0

// Package outcome defines the error taxonomy of the folder color engine.
//
// Hard failures are ordinary errors wrapping one of the sentinels
// (ErrNotFound, ErrPermissionDenied, ErrInvalidArgument, ErrCorrupt) and are
// returned to the caller. Soft failures happen inside best-effort steps
// (override removal, cache invalidation, ledger bookkeeping); they never abort
// the surrounding operation and are collected in an Outcome instead, tagged
// with a Reason from a small closed set.
package outcome
