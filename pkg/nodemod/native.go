// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// NativeNone means the package has no native build step.
	NativeNone NativeModuleType = iota
	// NativePrebuild means the package downloads prebuilt binaries through an installer tool.
	NativePrebuild
	// NativeNodeGyp means the package compiles from source through generated makefiles.
	NativeNodeGyp
)

// NativeModuleType classifies how a package would produce its native code.
type NativeModuleType int

// String returns the lowercase name of the native module type.
func (n NativeModuleType) String() string {
	switch n {
	case NativeNone:
		return "none"
	case NativePrebuild:
		return "prebuild"
	case NativeNodeGyp:
		return "node-gyp"
	default:
		return fmt.Sprintf("NativeModuleType(%d)", int(n))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (n NativeModuleType) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// ClassifyNative inspects a loaded manifest and its directory. The first match wins:
// a configured prebuilt installer among the production dependencies, then a
// native build configuration file in dir. Nothing is built or executed.
func ClassifyNative(dir string, m *Manifest, opts Options) NativeModuleType {
	for _, installer := range opts.PrebuiltInstallers {
		if _, ok := m.Dependencies[installer]; ok {
			return NativePrebuild
		}
	}

	if pathExists(filepath.Join(dir, opts.NativeConfigFile)) {
		return NativeNodeGyp
	}

	return NativeNone
}

// pathExists follows symlinks, so a dangling link reports false.
func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
