// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers shared by the package tests: environment
// and working directory management (MustSetenv, MustChdir, SetHomeDir), file
// setup (MustMkdirAll, MustWriteFile) and a controllable clock (FakeClock)
// for the refresh and watch timing paths.
package testutil
