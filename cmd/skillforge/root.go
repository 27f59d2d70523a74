// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/skillforge/skillforge/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables verbose output
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string
)

// newRootCommand creates the base command and wires all subcommands.
func newRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "skillforge",
		Short: "Compile skill selections into versioned agent bundles",
		Long: TitleStyle.Render("skillforge") + SubtitleStyle.Render(" - Compile skill selections into versioned agent bundles") + `

skillforge compiles declarative skill selections into conflict-checked,
content-versioned agent artifacts. Skills, categories, agents, and
stacks are declared in a 'skillset.cue' document; each compile resolves
every agent's selection against the catalog's constraints and writes
one markdown artifact per agent plus a bundle manifest.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a skillset.cue in your project directory
  2. Declare skills, categories, and agents using CUE syntax
  3. Compile with: skillforge build

` + SubtitleStyle.Render("Examples:") + `
  skillforge build                 Compile every declared agent
  skillforge build --stack web     Compile with the 'web' stack applied
  skillforge validate              Validate the skillset document
  skillforge catalog list          List all skills in the catalog
  skillforge init                  Create a starter skillset.cue`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.Context(), app)
		},
	}

	// Subcommands inherit these writers via OutOrStdout/ErrOrStderr, which
	// is what lets tests capture output through the App's dependencies.
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/skillforge/config.cue)")

	rootCmd.AddCommand(newBuildCommand(app))
	rootCmd.AddCommand(newValidateCommand(app))
	rootCmd.AddCommand(newCatalogCommand(app))
	rootCmd.AddCommand(newStacksCommand(app))
	rootCmd.AddCommand(newAgentsCommand(app))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// setupLogging installs a charmbracelet logger as the process-wide slog
// handler. The level follows --verbose, falling back to the configured
// ui.verbose setting.
func setupLogging(ctx context.Context, app *App) {
	if !verbose {
		if cfg, err := app.Config.Load(ctx, config.LoadOptions{ConfigFilePath: cfgFile}); err == nil {
			verbose = cfg.UI.Verbose
		}
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
		Prefix:          "skillforge",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute builds the App and the command tree and runs the CLI.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, ErrorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}

	// Use fang.Execute for enhanced Cobra styling
	// Pass version via fang.WithVersion() since fang overrides rootCmd.Version
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}

// GetVerbose returns the verbose flag value
func GetVerbose() bool {
	return verbose
}
