// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/skillforge/skillforge/internal/catalog"
	"github.com/skillforge/skillforge/pkg/skilldoc"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"

	"github.com/spf13/cobra"
)

// newValidateCommand creates the `skillforge validate` command. It runs the
// same checks a build would, stage by stage, without resolving or writing
// anything: document parse, catalog constraint validation, and instruction
// document checks.
func newValidateCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a skillset document and its instruction docs",
		Long: `Validate a skillset document without compiling it.

Checks run in stages and report every problem found:
  1. CUE schema and structural validation (duplicate IDs, self-relations,
     stack references to undeclared agents)
  2. Catalog constraint validation (dangling relation targets, unknown
     categories, required categories with no member skills)
  3. Instruction documents (every referenced file must exist and parse)

Without a path argument, the configured skillset path is validated.

Examples:
  skillforge validate                    Validate the default skillset.cue
  skillforge validate ./team/skillset.cue`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			} else {
				cfg, err := loadConfigOrDefaults(cmd.Context(), app)
				if err != nil {
					return err
				}
				path = resolveSkillsetPath("", cfg)
			}

			return runValidation(cmd, path)
		},
	}
}

// runValidation validates a single skillset document and renders a staged
// report. All stages that can still run after a failure do run, so one pass
// shows the complete picture instead of forcing fix-and-rerun loops.
func runValidation(cmd *cobra.Command, path string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	fmt.Fprintln(stdout, reportTitleStyle.Render("Skillset Validation"))
	fmt.Fprintf(stdout, "%s Path: %s\n", infoIcon, pathStyle.Render(absPath))
	fmt.Fprintln(stdout)

	// Stage 1: CUE schema + structural validation. Parse covers both; a
	// document that decodes against the schema still goes through the
	// structural checks before it is returned.
	doc, err := skillset.Parse(path)
	if err != nil {
		fmt.Fprintf(stderr, "%s Document validation failed\n", errorIcon)
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "  %s\n", err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: types.ExitValidation, Err: err}
	}

	fmt.Fprintf(stdout, "%s CUE schema validation passed\n", successIcon)
	fmt.Fprintf(stdout, "%s Structural validation passed\n", successIcon)

	// Stage 2: catalog constraint validation. Build collects every
	// violation, so the numbered list below is exhaustive.
	valid := true
	if _, err := catalog.Build(doc); err != nil {
		violations := joinedErrors(err)
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "%s %d catalog issue(s) found:\n", WarningStyle.Render("!"), len(violations))
		fmt.Fprintln(stderr)
		for i, v := range violations {
			fmt.Fprintf(stderr, "  %d. %s\n", i+1, v)
		}
		valid = false
	} else {
		fmt.Fprintf(stdout, "%s Catalog constraint validation passed\n", successIcon)
	}

	// Stage 3: instruction documents. Missing or unparsable docs are
	// authoring mistakes in the skillset; unreadable ones are I/O failures
	// and map to the I/O exit code.
	checked, docIssues, ioFailure := checkInstructionDocs(doc)
	if len(docIssues) > 0 {
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "%s %d instruction document issue(s) found:\n", WarningStyle.Render("!"), len(docIssues))
		fmt.Fprintln(stderr)
		for i, di := range docIssues {
			tag := issueTagStyle.Render(fmt.Sprintf("[%s]", di.skill))
			fmt.Fprintf(stderr, "  %d. %s %s\n", i+1, tag, pathStyle.Render(di.path))
			fmt.Fprintf(stderr, "     %s\n", di.err)
		}
		valid = false
	} else if checked > 0 {
		fmt.Fprintf(stdout, "%s Instruction documents valid (%d checked)\n", successIcon, checked)
	} else {
		fmt.Fprintf(stdout, "%s No instruction documents declared\n", infoIcon)
	}

	if !valid {
		fmt.Fprintln(stderr)
		fmt.Fprintf(stderr, "%s Validation failed\n", errorIcon)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		code := types.ExitValidation
		if ioFailure {
			code = types.ExitIO
		}
		return &ExitError{Code: code, Err: fmt.Errorf("skillset %s is invalid", path)}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Skillset is valid (%d skill(s), %d categor(ies), %d agent(s), %d stack(s))\n",
		successIcon, len(doc.Skills), len(doc.Categories), len(doc.Agents), len(doc.Stacks))
	return nil
}

// docIssue is one instruction document problem tied back to the skill that
// declared the reference.
type docIssue struct {
	skill types.SkillID
	path  string
	err   error
}

// checkInstructionDocs loads every referenced instruction document. It
// returns the number checked, the collected issues, and whether any issue
// was an I/O failure rather than a missing or unparsable document.
func checkInstructionDocs(doc *skillset.Document) (checked int, issues []docIssue, ioFailure bool) {
	for i := range doc.Skills {
		sk := &doc.Skills[i]
		path := doc.InstructionsPath(sk)
		if path == "" {
			continue
		}
		checked++

		if _, err := skilldoc.Load(path); err != nil {
			issues = append(issues, docIssue{skill: sk.ID, path: path, err: err})
			if !errors.Is(err, fs.ErrNotExist) && isReadFailure(err) {
				ioFailure = true
			}
		}
	}
	return checked, issues, ioFailure
}

// isReadFailure distinguishes filesystem errors from parse errors. A
// *fs.PathError that is not ErrNotExist means the file exists but could
// not be read.
func isReadFailure(err error) bool {
	var pathErr *fs.PathError
	return errors.As(err, &pathErr)
}

// joinedErrors flattens a wrapped errors.Join into its parts. Errors that
// carry no multi-unwrap node come back as a single-element slice.
func joinedErrors(err error) []error {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if multi, ok := e.(interface{ Unwrap() []error }); ok {
			return multi.Unwrap()
		}
	}
	return []error{err}
}
