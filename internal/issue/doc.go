// SPDX-License-Identifier: MPL-2.0

// Package issue holds colorit's user-facing error catalog and the
// ActionableError type the CLI prints for hard failures.
//
// Catalog entries are Markdown rendered with glamour; ActionableError
// carries the operation, the folder involved and short suggestions.
package issue
