// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRoot is returned when a Walker is created without a usable root path.
	ErrInvalidRoot = errors.New("invalid root module path")
	// ErrManifestParse is the sentinel error wrapped by ManifestParseError.
	ErrManifestParse = errors.New("malformed package manifest")
	// ErrModuleNotFound is the sentinel error wrapped by ModuleNotFoundError.
	ErrModuleNotFound = errors.New("module not found")
	// ErrInvalidDepType is the sentinel error wrapped by InvalidDepTypeError.
	ErrInvalidDepType = errors.New("invalid dependency type")
)

type (
	// InvalidRootError is returned by NewWalker when the root path is empty.
	// It wraps ErrInvalidRoot for errors.Is() compatibility.
	InvalidRootError struct {
		Value string
	}

	// ManifestParseError is returned when a manifest exists but is not valid JSON
	// of the expected shape. It aborts the whole walk.
	ManifestParseError struct {
		// Path is the manifest file that failed to parse.
		Path string
		// Err is the decoder error.
		Err error
	}

	// ModuleNotFoundError is returned when a required dependency cannot be located
	// in any node_modules directory above the package that declared it.
	ModuleNotFoundError struct {
		// Name is the dependency name as declared in the manifest.
		Name string
		// From is the directory of the package that required it.
		From string
	}

	// InvalidDepTypeError is returned when a dependency type name is not recognized.
	InvalidDepTypeError struct {
		Value string
	}
)

func (e *InvalidRootError) Error() string {
	return fmt.Sprintf("%s: %q (must be a non-empty path)", ErrInvalidRoot, e.Value)
}

// Unwrap returns ErrInvalidRoot.
func (e *InvalidRootError) Unwrap() error { return ErrInvalidRoot }

func (e *ManifestParseError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrManifestParse, e.Path, e.Err)
}

// Unwrap returns both the sentinel and the decoder error.
func (e *ManifestParseError) Unwrap() []error { return []error{ErrManifestParse, e.Err} }

func (e *ModuleNotFoundError) Error() string {
	return fmt.Sprintf("failed to locate module %q from %q: either the package was removed "+
		"(check ignore settings of the packaging tool) or the module installation failed", e.Name, e.From)
}

// Unwrap returns ErrModuleNotFound.
func (e *ModuleNotFoundError) Unwrap() error { return ErrModuleNotFound }

func (e *InvalidDepTypeError) Error() string {
	return fmt.Sprintf("%s %q (expected one of: optional, dev-optional, dev, prod, root)", ErrInvalidDepType, e.Value)
}

// Unwrap returns ErrInvalidDepType.
func (e *InvalidDepTypeError) Unwrap() error { return ErrInvalidDepType }
