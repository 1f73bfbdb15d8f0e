// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Manifest is the subset of package.json the walker reads.
type Manifest struct {
	// Name is the declared package name. Empty when the manifest omits it
	// or declares something other than a string.
	Name string

	// Dependencies maps production dependency names to version ranges.
	Dependencies map[string]string

	// DevDependencies maps development dependency names to version ranges.
	DevDependencies map[string]string

	// OptionalDependencies maps optional dependency names to version ranges.
	OptionalDependencies map[string]string
}

// LoadManifest reads the manifest named fileName inside dir.
//
// A missing manifest is not an error: it returns (nil, nil) so callers can treat
// the directory as a dead install. Only a file that is not valid JSON returns a
// *ManifestParseError. Fields of an unexpected shape are read leniently: a
// section that is not an object is empty, and a range that is not a string is
// kept with an empty version. On success all three dependency maps are non-nil.
func LoadManifest(dir, fileName string) (*Manifest, error) {
	path := filepath.Join(dir, fileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return nil, &ManifestParseError{Path: path, Err: err}
		}
		// Valid JSON that is not an object declares nothing.
		fields = nil
	}

	return &Manifest{
		Name:                 decodeString(fields["name"]),
		Dependencies:         decodeSection(fields["dependencies"]),
		DevDependencies:      decodeSection(fields["devDependencies"]),
		OptionalDependencies: decodeSection(fields["optionalDependencies"]),
	}, nil
}

func decodeString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// decodeSection reads a dependency section. Anything but an object yields an
// empty section.
func decodeSection(raw json.RawMessage) map[string]string {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return map[string]string{}
	}

	section := make(map[string]string, len(entries))
	for name, value := range entries {
		section[name] = decodeString(value)
	}
	return section
}

// IsOptional reports whether name is listed in optionalDependencies.
func (m *Manifest) IsOptional(name string) bool {
	_, ok := m.OptionalDependencies[name]
	return ok
}

// SortedNames returns the keys of a dependency section in lexical order.
func SortedNames(deps map[string]string) []string {
	return slices.Sorted(maps.Keys(deps))
}
