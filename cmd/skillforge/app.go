// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"

	"github.com/skillforge/skillforge/internal/catalog"
	"github.com/skillforge/skillforge/internal/compile"
	"github.com/skillforge/skillforge/internal/config"
	"github.com/skillforge/skillforge/internal/issue"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"

	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: all Cobra command handlers receive an App
	// reference and delegate business logic through its service interfaces.
	App struct {
		Config   ConfigProvider
		Compiler CompileService
		Catalogs *catalog.Cache
		stdout   io.Writer
		stderr   io.Writer
		diags    []Diagnostic
	}

	// Diagnostic is a non-fatal observation recorded while a command
	// prepares its inputs, for example a config load falling back to
	// defaults. Diagnostics never fail a command.
	Diagnostic struct {
		Stage   string
		Message string
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp. Tests can
	// supply mock implementations to isolate specific service behavior.
	Dependencies struct {
		Config   ConfigProvider
		Compiler CompileService
		Catalogs *catalog.Cache
		Stdout   io.Writer
		Stderr   io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	// This abstraction enables testing with custom config sources or mock
	// implementations.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// CompileService runs the compilation pipeline. Implementations must not
	// write to stdout/stderr; results come back as a structured Outcome for
	// the CLI layer to render.
	CompileService interface {
		Run(ctx context.Context, opts compile.Options) (*compile.Outcome, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Catalogs == nil {
		deps.Catalogs = catalog.NewCache()
	}
	if deps.Compiler == nil {
		deps.Compiler = compile.New(deps.Catalogs, nil)
	}

	return &App{
		Config:   deps.Config,
		Compiler: deps.Compiler,
		Catalogs: deps.Catalogs,
		stdout:   deps.Stdout,
		stderr:   deps.Stderr,
	}, nil
}

// noteDiagnostic records a non-fatal observation on the App. In verbose
// mode it is echoed to stderr right away; otherwise it stays queryable via
// Diagnostics.
func (a *App) noteDiagnostic(stage, format string, args ...any) {
	d := Diagnostic{Stage: stage, Message: fmt.Sprintf(format, args...)}
	a.diags = append(a.diags, d)
	if verbose {
		fmt.Fprintf(a.stderr, "%s %s: %s\n", infoIcon, d.Stage, d.Message)
	}
}

// Diagnostics returns the non-fatal observations recorded so far.
func (a *App) Diagnostics() []Diagnostic {
	return slices.Clone(a.diags)
}

// loadConfigOrDefaults loads configuration via the provider. When the user
// explicitly requested a config file (--config), a load failure is fatal.
// Otherwise the CLI stays operational on defaults and records the failure
// as a diagnostic.
func loadConfigOrDefaults(ctx context.Context, app *App) (*config.Config, error) {
	cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile})
	if err == nil {
		return cfg, nil
	}

	if cfgFile != "" {
		return nil, err
	}

	app.noteDiagnostic("config", "failed to load config, using defaults: %v", err)
	return config.DefaultConfig(), nil
}

// resolveSkillsetPath picks the skillset document location with the
// precedence: explicit flag, configured path, default file name.
func resolveSkillsetPath(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.SkillsetPath != "" {
		return string(cfg.SkillsetPath)
	}
	return skillset.DefaultFileName
}

// resolveOutputDir picks the bundle output directory with the precedence:
// explicit flag, configured dir, default dir.
func resolveOutputDir(flagValue string, cfg *config.Config) string {
	if flagValue != "" {
		return flagValue
	}
	if cfg != nil && cfg.OutputDir != "" {
		return string(cfg.OutputDir)
	}
	return string(config.DefaultOutputDir)
}

// loadCatalog loads and validates the skillset document for read-only
// commands. Failures are rendered as issue cards and converted to
// ExitErrors with the validation exit code.
func loadCatalog(cmd *cobra.Command, app *App, path string) (*catalog.Catalog, error) {
	cat, err := app.Catalogs.Load(cmd.Context(), path)
	if err == nil {
		return cat, nil
	}

	svcErr := classifyLoadError(err, path)
	renderServiceError(cmd.ErrOrStderr(), svcErr)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return nil, &ExitError{Code: types.ExitValidation, Err: svcErr}
}

// classifyLoadError maps a skillset load failure to the issue catalog entry
// that explains it: missing file, unparsable document, or catalog-level
// constraint violations.
func classifyLoadError(err error, path string) *ServiceError {
	styled := fmt.Sprintf("%s %s\n", errorIcon, err)

	switch {
	case errors.Is(err, fs.ErrNotExist):
		return newServiceError(err, issue.SkillsetNotFoundId, styled)
	case errors.Is(err, catalog.ErrDanglingRelation),
		errors.Is(err, catalog.ErrSelfRelation),
		errors.Is(err, catalog.ErrUnknownCategory),
		errors.Is(err, catalog.ErrInconsistentCategory):
		return newServiceError(err, issue.CatalogInvalidId, styled)
	default:
		return newServiceError(err, issue.SkillsetParseErrorId, styled)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
