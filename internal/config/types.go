// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// DefaultOutputDir is where compiled bundles land when no output
	// directory is configured.
	DefaultOutputDir OutputDirPath = "dist"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidSkillsetPath is returned when a SkillsetPath value is whitespace-only.
	ErrInvalidSkillsetPath = errors.New("invalid skillset path")
	// ErrInvalidOutputDirPath is returned when an OutputDirPath value is whitespace-only.
	ErrInvalidOutputDirPath = errors.New("invalid output dir path")
	// ErrInvalidStackName is returned when a StackName value is whitespace-only.
	ErrInvalidStackName = errors.New("invalid stack name")
	// ErrInvalidUIConfig is the sentinel error wrapped by InvalidUIConfigError.
	ErrInvalidUIConfig = errors.New("invalid UI config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// SkillsetPath represents a filesystem path to a skillset document.
	// The zero value ("") is valid and means "search the default locations".
	// Non-zero values must not be whitespace-only.
	SkillsetPath string

	// InvalidSkillsetPathError is returned when a SkillsetPath value is
	// non-empty but whitespace-only.
	InvalidSkillsetPathError struct {
		Value SkillsetPath
	}

	// OutputDirPath represents the directory compiled bundles are written to.
	// The zero value ("") is valid and means "use the default output directory".
	// Non-zero values must not be whitespace-only.
	OutputDirPath string

	// InvalidOutputDirPathError is returned when an OutputDirPath value is
	// non-empty but whitespace-only.
	InvalidOutputDirPathError struct {
		Value OutputDirPath
	}

	// StackName names a stack declared in the skillset document.
	// The zero value ("") is valid and means "no stack preselection".
	// Non-zero values must not be whitespace-only.
	StackName string

	// InvalidStackNameError is returned when a StackName value is
	// non-empty but whitespace-only.
	InvalidStackNameError struct {
		Value StackName
	}

	// InvalidUIConfigError is returned when a UIConfig has invalid fields.
	// It wraps ErrInvalidUIConfig for errors.Is() compatibility and collects
	// field-level validation errors.
	InvalidUIConfigError struct {
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// SkillsetPath locates the skillset document to compile.
		SkillsetPath SkillsetPath `json:"skillset_path" mapstructure:"skillset_path"`
		// OutputDir receives the compiled bundle.
		OutputDir OutputDirPath `json:"output_dir" mapstructure:"output_dir"`
		// DefaultStack is applied when no --stack flag is given.
		DefaultStack StackName `json:"default_stack" mapstructure:"default_stack"`
		// Versioning configures version record handling.
		Versioning VersioningConfig `json:"versioning" mapstructure:"versioning"`
		// UI configures the user interface.
		UI UIConfig `json:"ui" mapstructure:"ui"`
	}

	// VersioningConfig configures version record handling.
	VersioningConfig struct {
		// ResetOnCorrupt discards a corrupt version record and restarts
		// version history, instead of failing the compile.
		ResetOnCorrupt bool `json:"reset_on_corrupt" mapstructure:"reset_on_corrupt"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables verbose output
		Verbose bool `json:"verbose" mapstructure:"verbose"`
	}
)

// IsValid returns whether the UIConfig has valid fields.
// It delegates to ColorScheme.IsValid(); bool fields need no validation.
func (c UIConfig) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidUIConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidUIConfigError.
func (e *InvalidUIConfigError) Error() string {
	return fmt.Sprintf("invalid UI config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidUIConfig for errors.Is() compatibility.
func (e *InvalidUIConfigError) Unwrap() error { return ErrInvalidUIConfig }

// IsValid returns whether the Config has valid fields.
// It delegates to SkillsetPath.IsValid(), OutputDir.IsValid(),
// DefaultStack.IsValid(), and UI.IsValid(). Versioning has only bool
// fields and needs no validation.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.SkillsetPath.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.OutputDir.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.DefaultStack.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %d field error(s)", len(e.FieldErrors))
}

// Unwrap returns ErrInvalidConfig for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// String returns the string representation of the SkillsetPath.
func (p SkillsetPath) String() string { return string(p) }

// IsValid returns whether the SkillsetPath is valid.
// The zero value ("") is valid (means "search the default locations").
// Non-zero values must not be whitespace-only.
func (p SkillsetPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidSkillsetPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSkillsetPathError.
func (e *InvalidSkillsetPathError) Error() string {
	return fmt.Sprintf("invalid skillset path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidSkillsetPath for errors.Is() compatibility.
func (e *InvalidSkillsetPathError) Unwrap() error { return ErrInvalidSkillsetPath }

// String returns the string representation of the OutputDirPath.
func (p OutputDirPath) String() string { return string(p) }

// IsValid returns whether the OutputDirPath is valid.
// The zero value ("") is valid (means "use the default output directory").
// Non-zero values must not be whitespace-only.
func (p OutputDirPath) IsValid() (bool, []error) {
	if p == "" {
		return true, nil
	}
	if strings.TrimSpace(string(p)) == "" {
		return false, []error{&InvalidOutputDirPathError{Value: p}}
	}
	return true, nil
}

// Error implements the error interface for InvalidOutputDirPathError.
func (e *InvalidOutputDirPathError) Error() string {
	return fmt.Sprintf("invalid output dir path %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidOutputDirPath for errors.Is() compatibility.
func (e *InvalidOutputDirPathError) Unwrap() error { return ErrInvalidOutputDirPath }

// String returns the string representation of the StackName.
func (s StackName) String() string { return string(s) }

// IsValid returns whether the StackName is valid.
// The zero value ("") is valid (means "no stack preselection").
// Non-zero values must not be whitespace-only.
func (s StackName) IsValid() (bool, []error) {
	if s == "" {
		return true, nil
	}
	if strings.TrimSpace(string(s)) == "" {
		return false, []error{&InvalidStackNameError{Value: s}}
	}
	return true, nil
}

// Error implements the error interface for InvalidStackNameError.
func (e *InvalidStackNameError) Error() string {
	return fmt.Sprintf("invalid stack name %q: non-empty value must not be whitespace-only", e.Value)
}

// Unwrap returns ErrInvalidStackName for errors.Is() compatibility.
func (e *InvalidStackNameError) Unwrap() error { return ErrInvalidStackName }

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

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		SkillsetPath: "", // Will search default locations if empty
		OutputDir:    DefaultOutputDir,
		DefaultStack: "",
		Versioning: VersioningConfig{
			ResetOnCorrupt: false,
		},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}
