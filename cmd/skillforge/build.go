// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/skillforge/skillforge/internal/compile"
	"github.com/skillforge/skillforge/internal/issue"
	"github.com/skillforge/skillforge/internal/version"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"

	"github.com/spf13/cobra"
)

// newBuildCommand creates the `skillforge build` command: the full
// compilation pipeline from skillset document to versioned agent bundle.
func newBuildCommand(app *App) *cobra.Command {
	var (
		skillsetPath string
		stackName    string
		agentNames   []string
		extraSkills  []string
		preloads     []string
		outDir       string
		dryRun       bool
		resetVersion bool
	)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Compile agent bundles from the skillset document",
		Long: `Compile the skillset document into one artifact per agent plus a
bundle manifest and a version record.

Each agent's declared skill selection is merged with the optional stack
selection and any --skill/--preload additions, resolved against the
catalog's constraints (conflicts, requirements, category rules), and
written as a markdown artifact. The bundle version derives from the
canonical content state: unchanged content keeps its version, any
change bumps the major version.

Examples:
  skillforge build                                 Compile every declared agent
  skillforge build --stack frontend                Apply the 'frontend' stack
  skillforge build --agent web --agent reviewer    Compile only the named agents
  skillforge build --skill web-tooling-eslint --dry-run
  skillforge build --out build/bundle`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOrDefaults(cmd.Context(), app)
			if err != nil {
				return err
			}

			if stackName == "" && cfg.DefaultStack != "" {
				stackName = string(cfg.DefaultStack)
				app.noteDiagnostic("stack", "applying configured default stack %q", stackName)
			}

			opts := compile.Options{
				SkillsetPath:  resolveSkillsetPath(skillsetPath, cfg),
				OutputDir:     resolveOutputDir(outDir, cfg),
				Stack:         stackName,
				Agents:        agentNames,
				ExtraSkills:   toSkillIDs(extraSkills),
				PreloadSkills: toSkillIDs(preloads),
				DryRun:        dryRun,
				ResetVersion:  resetVersion || cfg.Versioning.ResetOnCorrupt,
			}

			return runBuild(cmd, app, opts)
		},
	}

	buildCmd.Flags().StringVar(&skillsetPath, "skillset", "", "path to the skillset document (default is ./skillset.cue)")
	buildCmd.Flags().StringVar(&stackName, "stack", "", "stack to apply on top of the agents' declared selections")
	buildCmd.Flags().StringArrayVar(&agentNames, "agent", nil, "compile only the named agent (repeatable)")
	buildCmd.Flags().StringArrayVar(&extraSkills, "skill", nil, "add a skill to every target agent (repeatable)")
	buildCmd.Flags().StringArrayVar(&preloads, "preload", nil, "add a skill with preloaded activation (repeatable)")
	buildCmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory for the bundle (default is 'dist')")
	buildCmd.Flags().BoolVar(&dryRun, "dry-run", false, "resolve and version without writing files")
	buildCmd.Flags().BoolVar(&resetVersion, "reset-version", false, "discard a corrupt version record instead of failing")

	return buildCmd
}

// runBuild executes the pipeline and renders the outcome. The catalog is
// loaded up front so load failures get the same issue cards as the
// read-only commands; the pipeline then hits the warm cache.
func runBuild(cmd *cobra.Command, app *App, opts compile.Options) error {
	stdout := cmd.OutOrStdout()

	if _, err := loadCatalog(cmd, app, opts.SkillsetPath); err != nil {
		return err
	}

	fmt.Fprintln(stdout, reportTitleStyle.Render("Build Bundle"))
	fmt.Fprintf(stdout, "%s Skillset: %s\n", infoIcon, pathStyle.Render(opts.SkillsetPath))
	fmt.Fprintf(stdout, "%s Output:   %s\n", infoIcon, pathStyle.Render(opts.OutputDir))
	if opts.Stack != "" {
		fmt.Fprintf(stdout, "%s Stack:    %s\n", infoIcon, SkillStyle.Render(opts.Stack))
	}
	fmt.Fprintln(stdout)

	outcome, err := app.Compiler.Run(cmd.Context(), opts)
	if err != nil {
		return renderBuildError(cmd, err)
	}

	for _, agent := range outcome.Agents {
		preloaded := 0
		for _, entry := range agent.Entries {
			if entry.Mode == skillset.ModePreloaded {
				preloaded++
			}
		}
		fmt.Fprintf(stdout, "%s %s - %d preloaded, %d on-demand\n",
			successIcon, agentNameStyle.Render(string(agent.Agent)),
			preloaded, len(agent.Entries)-preloaded)
		for _, adv := range agent.Advisories {
			fmt.Fprintf(stdout, "  %s\n", WarningStyle.Render(adv.String()))
		}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Version: %s %s\n",
		infoIcon, versionStyle.Render(string(outcome.Record.Version)), versionNote(outcome))

	if outcome.DryRun {
		fmt.Fprintf(stdout, "%s Dry run: no files written\n", infoIcon)
		return nil
	}

	fmt.Fprintf(stdout, "%s Wrote %d agent file(s) and %s\n",
		successIcon,
		len(outcome.Written.AgentFiles),
		pathStyle.Render(outcome.Written.ManifestPath))
	return nil
}

// versionNote explains the version decision next to the number.
func versionNote(outcome *compile.Outcome) string {
	switch {
	case outcome.PriorVersion == "":
		return SubtitleStyle.Render("(initial)")
	case outcome.Changed:
		return SubtitleStyle.Render(fmt.Sprintf("(content changed, was %s)", outcome.PriorVersion))
	default:
		return SubtitleStyle.Render("(unchanged)")
	}
}

// renderBuildError classifies a pipeline failure that happened after the
// document loaded cleanly, renders the matching issue card, and maps it to
// the exit code taxonomy: selection mistakes are validation failures,
// constraint violations are resolution failures, and everything around the
// output directory is an I/O failure.
func renderBuildError(cmd *cobra.Command, err error) error {
	stderr := cmd.ErrOrStderr()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var resErr *compile.ResolutionError
	if errors.As(err, &resErr) {
		renderResolutionFailure(stderr, resErr)
		return &ExitError{Code: types.ExitResolution, Err: err}
	}

	if errors.Is(err, compile.ErrUnknownAgent) || errors.Is(err, compile.ErrUnknownStack) {
		fmt.Fprintf(stderr, "%s %s\n", errorIcon, err)
		return &ExitError{Code: types.ExitValidation, Err: err}
	}

	var corrupt *version.CorruptRecordError
	if errors.As(err, &corrupt) {
		svcErr := newServiceError(err, issue.CorruptVersionRecordId, fmt.Sprintf("%s %s\n", errorIcon, err))
		renderServiceError(stderr, svcErr)
		return &ExitError{Code: types.ExitIO, Err: svcErr}
	}

	svcErr := newServiceError(err, issue.OutputWriteFailedId, fmt.Sprintf("%s %s\n", errorIcon, err))
	renderServiceError(stderr, svcErr)
	return &ExitError{Code: types.ExitIO, Err: svcErr}
}

// renderResolutionFailure prints every agent's resolution errors. The
// pipeline collects failures across all target agents, so one run shows
// the complete picture.
func renderResolutionFailure(stderr io.Writer, resErr *compile.ResolutionError) {
	errs := resErr.Unwrap()
	fmt.Fprintf(stderr, "%s Resolution failed with %d error(s):\n\n", errorIcon, len(errs))
	for i, err := range errs {
		fmt.Fprintf(stderr, "  %d. %s\n", i+1, err)
	}
	fmt.Fprintln(stderr)

	if entry := issue.Get(issue.ResolutionFailedId); entry != nil {
		if rendered, renderErr := entry.Render("dark"); renderErr == nil {
			fmt.Fprint(stderr, rendered)
		}
	}
}

// toSkillIDs converts raw flag values to typed skill IDs. Malformed IDs
// pass through and surface as unknown-skill resolution errors, which carry
// the offending value.
func toSkillIDs(raw []string) []types.SkillID {
	if len(raw) == 0 {
		return nil
	}
	ids := make([]types.SkillID, 0, len(raw))
	for _, r := range raw {
		ids = append(ids, types.SkillID(r))
	}
	return ids
}
