// SPDX-License-Identifier: MPL-2.0

// Package config handles depwalk configuration using Viper with CUE as the file format.
//
// Configuration is loaded from $XDG_CONFIG_HOME/depwalk/config.cue on Linux,
// ~/Library/Application Support/depwalk/config.cue on macOS and %APPDATA%\depwalk\config.cue
// on Windows, falling back to ./config.cue. It overrides the on-disk conventions of the
// walker (container directory, manifest name, native build markers) and output settings.
//
// Files are validated against the embedded CUE schema (config_schema.cue) before they are
// merged over the defaults.
package config
