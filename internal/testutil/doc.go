// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helpers that build package trees on disk for tests.
//
// A [Tree] lives in a per-test temporary directory and offers Must-style helpers
// that fail the test immediately on I/O errors: packages with manifests
// (Package), dead installs without one (DeadInstall), raw files (File) and
// symlinks (Symlink).
package testutil
