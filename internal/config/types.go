// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/invowk/depwalk/pkg/nodemod"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// FormatTable prints one aligned row per module.
	FormatTable OutputFormat = "table"
	// FormatJSON prints the module records as a JSON array.
	FormatJSON OutputFormat = "json"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputFormat is returned when an OutputFormat value is not recognized.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)

type (
	// ColorScheme selects the terminal palette.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// OutputFormat selects how walk results are printed.
	OutputFormat string

	// InvalidOutputFormatError is returned when an OutputFormat value is not recognized.
	// It wraps ErrInvalidOutputFormat for errors.Is() compatibility.
	InvalidOutputFormatError struct {
		Value OutputFormat
	}

	// Config is the complete depwalk configuration.
	Config struct {
		// Walk overrides the on-disk conventions the walker follows
		Walk WalkConfig `json:"walk" mapstructure:"walk"`
		// UI configures output
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// WalkConfig mirrors nodemod.Options.
	WalkConfig struct {
		ContainerDir       string   `json:"container_dir" mapstructure:"container_dir"`
		ManifestFile       string   `json:"manifest_file" mapstructure:"manifest_file"`
		NativeConfigFile   string   `json:"native_config_file" mapstructure:"native_config_file"`
		PrebuiltInstallers []string `json:"prebuilt_installers" mapstructure:"prebuilt_installers"`
		RealPathCacheSize  int      `json:"realpath_cache_size" mapstructure:"realpath_cache_size"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// Verbose enables debug logging of the walk
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Format sets the default output format of the walk command
		Format OutputFormat `json:"format" mapstructure:"format"`
	}
)

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// Validate returns an error if the ColorScheme is not one of the defined schemes.
func (cs ColorScheme) Validate() error {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return &InvalidColorSchemeError{Value: cs}
	}
}

// Error implements the error interface for InvalidOutputFormatError.
func (e *InvalidOutputFormatError) Error() string {
	return fmt.Sprintf("invalid output format %q (valid: table, json)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidOutputFormatError) Unwrap() error {
	return ErrInvalidOutputFormat
}

// String returns the string representation of the OutputFormat.
func (f OutputFormat) String() string { return string(f) }

// Validate returns an error if the OutputFormat is not one of the defined formats.
func (f OutputFormat) Validate() error {
	switch f {
	case FormatTable, FormatJSON:
		return nil
	default:
		return &InvalidOutputFormatError{Value: f}
	}
}

// Validate checks the fields the schema cannot see after defaults are merged.
func (c *Config) Validate() error {
	return errors.Join(c.UI.ColorScheme.Validate(), c.UI.Format.Validate())
}

// WalkOptions converts the walk section to walker options.
func (c *Config) WalkOptions() nodemod.Options {
	return nodemod.Options{
		ContainerDir:       c.Walk.ContainerDir,
		ManifestFile:       c.Walk.ManifestFile,
		NativeConfigFile:   c.Walk.NativeConfigFile,
		PrebuiltInstallers: slices.Clone(c.Walk.PrebuiltInstallers),
		RealPathCacheSize:  c.Walk.RealPathCacheSize,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	defaults := nodemod.DefaultOptions()
	return &Config{
		Walk: WalkConfig{
			ContainerDir:       defaults.ContainerDir,
			ManifestFile:       defaults.ManifestFile,
			NativeConfigFile:   defaults.NativeConfigFile,
			PrebuiltInstallers: defaults.PrebuiltInstallers,
			RealPathCacheSize:  defaults.RealPathCacheSize,
		},
		UI: UIConfig{
			Verbose:     false,
			ColorScheme: ColorSchemeAuto,
			Format:      FormatTable,
		},
	}
}
