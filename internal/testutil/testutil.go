// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

type (
	// Tree is a package tree rooted in a temporary directory.
	Tree struct {
		t testing.TB
		// Root is the symlink-free absolute path of the tree.
		Root string
	}

	// Package describes a package.json written by Tree.Package.
	// Nil dependency maps are omitted from the file entirely.
	Package struct {
		Name                 string            `json:"name,omitempty"`
		Version              string            `json:"version,omitempty"`
		Dependencies         map[string]string `json:"dependencies,omitempty"`
		DevDependencies      map[string]string `json:"devDependencies,omitempty"`
		OptionalDependencies map[string]string `json:"optionalDependencies,omitempty"`
	}
)

// NewTree creates an empty tree in t.TempDir().
//
// The root is passed through filepath.EvalSymlinks so paths built from it match
// the real paths a walker reports (macOS temp dirs live behind /var -> /private/var).
func NewTree(t testing.TB) *Tree {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("failed to resolve temp dir: %v", err)
	}
	return &Tree{t: t, Root: root}
}

// Path returns the absolute path of a slash-separated path relative to the root.
func (tr *Tree) Path(rel string) string {
	if rel == "" || rel == "." {
		return tr.Root
	}
	return filepath.Join(tr.Root, filepath.FromSlash(rel))
}

// Package writes a package.json for pkg into rel and returns the package directory.
func (tr *Tree) Package(rel string, pkg Package) string {
	tr.t.Helper()
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		tr.t.Fatalf("failed to encode manifest for %s: %v", rel, err)
	}
	tr.File(filepath.ToSlash(filepath.Join(rel, "package.json")), string(data))
	return tr.Path(rel)
}

// DeadInstall creates rel as a directory without a manifest.
func (tr *Tree) DeadInstall(rel string) string {
	tr.t.Helper()
	dir := tr.Path(rel)
	MustMkdirAll(tr.t, dir, 0o755)
	return dir
}

// File writes content to rel, creating parent directories.
func (tr *Tree) File(rel, content string) string {
	tr.t.Helper()
	path := tr.Path(rel)
	MustMkdirAll(tr.t, filepath.Dir(path), 0o755)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		tr.t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// Symlink creates link pointing at target, both relative to the root.
// The test is skipped where the platform refuses to create symlinks.
func (tr *Tree) Symlink(target, link string) string {
	tr.t.Helper()
	linkPath := tr.Path(link)
	MustMkdirAll(tr.t, filepath.Dir(linkPath), 0o755)
	if err := os.Symlink(tr.Path(target), linkPath); err != nil {
		tr.t.Skipf("symlinks not supported: %v", err)
	}
	return linkPath
}

// MustMkdirAll creates a directory along with any necessary parents.
// The test fails immediately if the operation fails.
func MustMkdirAll(t testing.TB, path string, perm os.FileMode) {
	t.Helper()
	if err := os.MkdirAll(path, perm); err != nil {
		t.Fatalf("failed to create directory %s: %v", path, err)
	}
}
