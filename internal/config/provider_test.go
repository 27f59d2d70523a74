// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOptions_Validate_AllEmpty(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{}
	err := opts.Validate()
	if err != nil {
		t.Errorf("empty LoadOptions should be valid, got error: %v", err)
	}
}

func TestLoadOptions_Validate_AllValid(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{
		ConfigFilePath: "/tmp/config.cue",
		ConfigDirPath:  "/tmp/config",
	}
	err := opts.Validate()
	if err != nil {
		t.Errorf("LoadOptions with valid paths should be valid, got error: %v", err)
	}
}

func TestLoadOptions_Validate_InvalidConfigFilePath(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{
		ConfigFilePath: "   ",
	}
	err := opts.Validate()
	if err == nil {
		t.Fatal("LoadOptions with whitespace-only ConfigFilePath should be invalid")
	}
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("error should wrap ErrInvalidLoadOptions, got: %v", err)
	}

	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
	}
	if len(loadErr.FieldErrors) != 1 {
		t.Errorf("expected 1 field error, got %d", len(loadErr.FieldErrors))
	}
}

func TestLoadOptions_Validate_InvalidConfigDirPath(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{
		ConfigDirPath: "\t",
	}
	err := opts.Validate()
	if err == nil {
		t.Fatal("LoadOptions with whitespace-only ConfigDirPath should be invalid")
	}
}

func TestLoadOptions_Validate_MultipleInvalid(t *testing.T) {
	t.Parallel()
	opts := LoadOptions{
		ConfigFilePath: "   ",
		ConfigDirPath:  "\t",
	}
	err := opts.Validate()
	if err == nil {
		t.Fatal("LoadOptions with all invalid paths should be invalid")
	}

	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
	}
	if len(loadErr.FieldErrors) != 2 {
		t.Errorf("expected 2 field errors, got %d: %v", len(loadErr.FieldErrors), loadErr.FieldErrors)
	}
}

func TestLoadOptions_Validate_MixedEmptyAndInvalid(t *testing.T) {
	t.Parallel()
	// Empty fields are valid (zero-value means "use default"),
	// only non-empty invalid fields should be caught.
	opts := LoadOptions{
		ConfigFilePath: "",
		ConfigDirPath:  "   ",
	}
	err := opts.Validate()
	if err == nil {
		t.Fatal("LoadOptions with one invalid field should be invalid")
	}

	var loadErr *InvalidLoadOptionsError
	if !errors.As(err, &loadErr) {
		t.Fatalf("error should be *InvalidLoadOptionsError, got: %T", err)
	}
	if len(loadErr.FieldErrors) != 1 {
		t.Errorf("expected 1 field error (only ConfigDirPath), got %d", len(loadErr.FieldErrors))
	}
}

func TestInvalidLoadOptionsError_Error_Single(t *testing.T) {
	t.Parallel()
	err := &InvalidLoadOptionsError{
		FieldErrors: []error{errors.New("test error")},
	}
	msg := err.Error()
	if msg != "invalid load options: test error" {
		t.Errorf("Error() = %q, want %q", msg, "invalid load options: test error")
	}
}

func TestInvalidLoadOptionsError_Error_Multiple(t *testing.T) {
	t.Parallel()
	err := &InvalidLoadOptionsError{
		FieldErrors: []error{errors.New("err1"), errors.New("err2")},
	}
	msg := err.Error()
	if msg != "invalid load options: 2 field errors" {
		t.Errorf("Error() = %q, want %q", msg, "invalid load options: 2 field errors")
	}
}

func TestInvalidLoadOptionsError_Unwrap(t *testing.T) {
	t.Parallel()
	err := &InvalidLoadOptionsError{
		FieldErrors: []error{errors.New("test")},
	}
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Error("Unwrap() should return ErrInvalidLoadOptions")
	}
}

func TestFileProvider_Load_RejectsInvalidOptions(t *testing.T) {
	t.Parallel()
	provider := NewProvider()
	_, err := provider.Load(context.Background(), LoadOptions{ConfigFilePath: "  "})
	if !errors.Is(err, ErrInvalidLoadOptions) {
		t.Errorf("Load with invalid options should wrap ErrInvalidLoadOptions, got: %v", err)
	}
}

func TestFileProvider_Load_FromConfigDir(t *testing.T) {
	t.Parallel()

	cfgDir := t.TempDir()
	content := `skillset_path: "./team.cue"
output_dir: "build"
default_stack: "frontend"

ui: {
	color_scheme: "dark"
	verbose: true
}
`
	if err := os.WriteFile(filepath.Join(cfgDir, "config.cue"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	provider := NewProvider()
	cfg, err := provider.Load(context.Background(), LoadOptions{ConfigDirPath: cfgDir})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.SkillsetPath != "./team.cue" {
		t.Errorf("SkillsetPath = %q, want %q", cfg.SkillsetPath, "./team.cue")
	}
	if cfg.OutputDir != "build" {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, "build")
	}
	if cfg.DefaultStack != "frontend" {
		t.Errorf("DefaultStack = %q, want %q", cfg.DefaultStack, "frontend")
	}
	if cfg.UI.ColorScheme != ColorSchemeDark {
		t.Errorf("UI.ColorScheme = %q, want %q", cfg.UI.ColorScheme, ColorSchemeDark)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose = false, want true")
	}
	// Unset fields keep their defaults.
	if cfg.Versioning.ResetOnCorrupt {
		t.Error("Versioning.ResetOnCorrupt should keep default false")
	}
}
