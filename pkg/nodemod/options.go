// SPDX-License-Identifier: MPL-2.0

package nodemod

import (
	"slices"

	"github.com/charmbracelet/log"
)

const (
	// DefaultContainerDir is the directory holding a package's installed dependencies.
	DefaultContainerDir = "node_modules"
	// DefaultManifestFile is the per-package manifest file name.
	DefaultManifestFile = "package.json"
	// DefaultNativeConfigFile marks a package that builds native code from source.
	DefaultNativeConfigFile = "binding.gyp"
	// DefaultPrebuiltInstaller is the installer tool that marks a prebuilt-binary package.
	DefaultPrebuiltInstaller = "prebuild-install"
	// DefaultRealPathCacheSize bounds the directory -> real path cache of one walker.
	DefaultRealPathCacheSize = 4096
)

type (
	// Options configures the on-disk conventions the walker follows.
	Options struct {
		// ContainerDir is the dependency container directory name (node_modules).
		ContainerDir string
		// ManifestFile is the manifest file name (package.json).
		ManifestFile string
		// NativeConfigFile is the file whose presence marks a source build (binding.gyp).
		NativeConfigFile string
		// PrebuiltInstallers lists installer tools whose presence among production
		// dependencies marks a prebuilt-binary package.
		PrebuiltInstallers []string
		// RealPathCacheSize bounds the real path cache. Values <= 0 use the default.
		RealPathCacheSize int
	}

	// Option configures a Walker.
	Option func(*Walker)
)

// DefaultOptions returns the conventions of a standard npm/yarn install.
func DefaultOptions() Options {
	return Options{
		ContainerDir:       DefaultContainerDir,
		ManifestFile:       DefaultManifestFile,
		NativeConfigFile:   DefaultNativeConfigFile,
		PrebuiltInstallers: []string{DefaultPrebuiltInstaller},
		RealPathCacheSize:  DefaultRealPathCacheSize,
	}
}

// withDefaults fills zero-valued fields from DefaultOptions.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ContainerDir == "" {
		o.ContainerDir = d.ContainerDir
	}
	if o.ManifestFile == "" {
		o.ManifestFile = d.ManifestFile
	}
	if o.NativeConfigFile == "" {
		o.NativeConfigFile = d.NativeConfigFile
	}
	if o.PrebuiltInstallers == nil {
		o.PrebuiltInstallers = d.PrebuiltInstallers
	} else {
		o.PrebuiltInstallers = slices.Clone(o.PrebuiltInstallers)
	}
	if o.RealPathCacheSize <= 0 {
		o.RealPathCacheSize = d.RealPathCacheSize
	}
	return o
}

// WithOptions overrides the walker's on-disk conventions.
// Zero-valued fields keep their defaults.
func WithOptions(opts Options) Option {
	return func(w *Walker) {
		w.opts = opts.withDefaults()
	}
}

// WithLogger sets the logger used for walk tracing. Tracing is emitted at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(w *Walker) {
		if logger != nil {
			w.logger = logger
		}
	}
}
