// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/skillforge/config.cue (or XDG equivalent on Linux,
// ~/Library/Application Support/skillforge/config.cue on macOS, %APPDATA%\skillforge\config.cue
// on Windows). The package provides type-safe configuration access and supports skillset
// location, output directory selection, default stack preselection, version record handling,
// and UI settings.
//
// Configuration validation is performed against a CUE schema (config_schema.cue) to ensure
// type safety and provide clear error messages for invalid configurations.
package config
