// SPDX-License-Identifier: MPL-2.0

// Package nodemod discovers every package reachable from a root package in a
// node_modules layout.
//
// Dependencies are located the way Node resolves modules: a dependency named
// "x" required from directory D is searched for at D/node_modules/x and then at
// the node_modules directory of every ancestor level. Each discovered package is
// recorded once, keyed by its resolved path, together with the strongest
// relationship by which it was reached and the native build mechanism it uses.
//
// # Components
//
//   - [LoadManifest]: reads a package.json, defaulting absent dependency sections
//   - [ClassifyNative]: detects prebuild-install and node-gyp packages
//   - [Walker]: concurrent, cycle-safe, memoized traversal of the tree
//
// # Dependency types
//
// [DepType] values are ordered by strength:
//
//	optional < dev-optional < dev < prod < root
//
// When a package is reached by several paths, its recorded type is the strongest
// one seen. Development dependencies are only followed from the root package.
//
// # Walk lifecycle
//
// A Walker performs at most one walk. [Walker.WalkTree] starts it on first call;
// every later or concurrent call waits for and returns the same outcome. Any
// fatal condition (a malformed manifest, a missing non-optional dependency)
// fails the whole walk and the failure is sticky.
package nodemod
