// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Failures surfaced by the CLI carry the operation that failed, the path involved and
// suggestions for fixing the install. Known failure kinds also have a Markdown guide in
// the issue catalog, rendered to the terminal with glamour.
package issue
