// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"errors"
	"maps"
	"slices"
	"testing"

	"github.com/invowk/depwalk/internal/testutil"
)

func TestLoadManifest_Missing(t *testing.T) {
	t.Parallel()
	tree := testutil.NewTree(t)
	dir := tree.DeadInstall("node_modules/gone")

	m, err := LoadManifest(dir, DefaultManifestFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m != nil {
		t.Errorf("expected no manifest, got %+v", m)
	}
}

func TestLoadManifest_DefaultsSections(t *testing.T) {
	t.Parallel()
	tree := testutil.NewTree(t)
	dir := tree.Package("pkg", testutil.Package{Name: "pkg"})

	m, err := LoadManifest(dir, DefaultManifestFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("expected a manifest")
	}
	if m.Name != "pkg" {
		t.Errorf("expected name pkg, got %q", m.Name)
	}
	if m.Dependencies == nil || m.DevDependencies == nil || m.OptionalDependencies == nil {
		t.Errorf("expected all sections to be non-nil, got %+v", m)
	}
}

func TestLoadManifest_EmptyObject(t *testing.T) {
	t.Parallel()
	tree := testutil.NewTree(t)
	tree.File("pkg/package.json", "{}")

	m, err := LoadManifest(tree.Path("pkg"), DefaultManifestFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil {
		t.Fatal("an empty manifest must be distinct from a missing one")
	}
	if m.Name != "" {
		t.Errorf("expected empty name, got %q", m.Name)
	}
}

func TestLoadManifest_Malformed(t *testing.T) {
	t.Parallel()
	tree := testutil.NewTree(t)
	tree.File("pkg/package.json", `{"name": "pkg",`)

	_, err := LoadManifest(tree.Path("pkg"), DefaultManifestFile)
	if !errors.Is(err, ErrManifestParse) {
		t.Fatalf("expected ErrManifestParse, got %v", err)
	}
	var parseErr *ManifestParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ManifestParseError, got %T", err)
	}
	if parseErr.Path != tree.Path("pkg/package.json") {
		t.Errorf("unexpected path %q", parseErr.Path)
	}
}

func TestLoadManifest_UnexpectedShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		wantName string
		wantDeps map[string]string
		wantDev  int
	}{
		{
			name:     "array dependencies",
			content:  `{"name": "pkg", "dependencies": [], "devDependencies": ["jest"]}`,
			wantName: "pkg",
			wantDeps: map[string]string{},
		},
		{
			name:     "non-string range",
			content:  `{"name": "pkg", "dependencies": {"a": {"version": "1.0.0"}, "b": "^2.0.0"}}`,
			wantName: "pkg",
			wantDeps: map[string]string{"a": "", "b": "^2.0.0"},
		},
		{
			name:     "non-string name and version",
			content:  `{"name": 42, "version": 1, "dependencies": {"a": "*"}}`,
			wantDeps: map[string]string{"a": "*"},
		},
		{
			name:     "null sections",
			content:  `{"name": "pkg", "dependencies": null, "devDependencies": {"jest": "*"}}`,
			wantName: "pkg",
			wantDeps: map[string]string{},
			wantDev:  1,
		},
		{
			name:     "top-level array",
			content:  `["not", "a", "manifest"]`,
			wantDeps: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tree := testutil.NewTree(t)
			tree.File("pkg/package.json", tt.content)

			m, err := LoadManifest(tree.Path("pkg"), DefaultManifestFile)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Name != tt.wantName {
				t.Errorf("expected name %q, got %q", tt.wantName, m.Name)
			}
			if !maps.Equal(m.Dependencies, tt.wantDeps) {
				t.Errorf("expected dependencies %v, got %v", tt.wantDeps, m.Dependencies)
			}
			if len(m.DevDependencies) != tt.wantDev {
				t.Errorf("expected %d dev dependencies, got %v", tt.wantDev, m.DevDependencies)
			}
			if m.OptionalDependencies == nil {
				t.Error("expected optionalDependencies to be non-nil")
			}
		})
	}
}

func TestLoadManifest_ByteOrderMark(t *testing.T) {
	t.Parallel()
	tree := testutil.NewTree(t)
	tree.File("pkg/package.json", "\xef\xbb\xbf{\"name\": \"app\", \"dependencies\": {\"a\": \"*\"}}")

	m, err := LoadManifest(tree.Path("pkg"), DefaultManifestFile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "app" || m.Dependencies["a"] != "*" {
		t.Errorf("unexpected manifest %+v", m)
	}
}

func TestLoadManifest_CustomFileName(t *testing.T) {
	t.Parallel()
	tree := testutil.NewTree(t)
	tree.File("pkg/manifest.json", `{"name": "custom", "dependencies": {"a": "^1.0.0"}}`)

	m, err := LoadManifest(tree.Path("pkg"), "manifest.json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.Name != "custom" {
		t.Fatalf("expected custom manifest, got %+v", m)
	}
	if _, ok := m.Dependencies["a"]; !ok {
		t.Errorf("expected dependency a, got %v", m.Dependencies)
	}
}

func TestManifest_IsOptional(t *testing.T) {
	t.Parallel()
	m := &Manifest{OptionalDependencies: map[string]string{"fsevents": "*"}}
	if !m.IsOptional("fsevents") {
		t.Error("expected fsevents to be optional")
	}
	if m.IsOptional("lodash") {
		t.Error("expected lodash not to be optional")
	}
}

func TestSortedNames(t *testing.T) {
	t.Parallel()
	got := SortedNames(map[string]string{"zeta": "1", "@scope/a": "1", "alpha": "1"})
	want := []string{"@scope/a", "alpha", "zeta"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}
