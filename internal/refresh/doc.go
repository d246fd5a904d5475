// SPDX-License-Identifier: MPL-2.0

// Package refresh coerces the host shell into redrawing a folder after its
// override changed.
//
// The Invalidator owns the choreography: cache artifacts are cleared before
// any notification, scoped notifications precede the single global one, the
// cache-rebuild helper gets a bounded wait, and two fixed delays separate the
// window refresh and the fallback flush. The shell itself sits behind the
// Notifier interface so the sequence can be recorded and asserted in tests.
// Every step is best-effort; failures end up in the returned outcome.Outcome.
package refresh
