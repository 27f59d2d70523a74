// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/skillforge/skillforge/pkg/skillset"

	"github.com/spf13/cobra"
)

// starterSkillset is the scaffold written by `skillforge init`. It parses
// cleanly and compiles as-is, so a fresh project can run `skillforge build`
// before touching anything.
const starterSkillset = `// skillset.cue declares the skill catalog, the agents that consume it,
// and optional stacks (named preselections applied with --stack).
//
// Check it with:   skillforge validate
// Compile it with: skillforge build

name:        "starter"
description: "Starter skillset. Replace the example skills with your own."

categories: [
	// Exclusive: an agent may select at most one framework skill.
	// Required: every agent must end up with one.
	{id: "framework", description: "UI framework choice", exclusive: true, required: true},
	{id: "testing", description: "Test tooling"},
	{id: "tooling", description: "Build and dev tooling"},
]

skills: [
	{
		id:           "web-framework-react"
		name:         "React"
		description:  "Component-based UI development with React"
		category:     "framework"
		hint:         "Use for SPA and component work"
		instructions: "docs/react.md"
		requires: ["web-tooling-bundler"]
	},
	{
		id:       "web-framework-vue"
		name:     "Vue"
		category: "framework"
		hint:     "Use for single-file component work"
		conflicts_with: ["web-framework-react"]
	},
	{
		id:       "web-testing-vitest"
		name:     "Vitest"
		category: "testing"
		hint:     "Write unit tests with vitest"
		recommends: ["web-framework-react"]
	},
	{
		id:       "web-tooling-bundler"
		name:     "Bundler"
		category: "tooling"
		hint:     "Bundle and serve the frontend"
	},
]

stacks: [
	{
		name:        "frontend"
		description: "Adds test tooling on top of each agent's defaults"
		agents: {
			web: [{id: "web-testing-vitest"}]
		}
	},
]

agents: [
	{
		name:        "web"
		description: "Builds and reviews web features"
		tools: ["browser", "editor"]
		skills: [{id: "web-framework-react", preload: true}]
	},
	{
		name:        "docs"
		description: "Writes and maintains documentation"
		skills: [{id: "web-framework-react"}]
	},
]
`

// starterInstructionDoc accompanies the scaffold's one instructions
// reference. The frontmatter block shows the optional metadata fields.
const starterInstructionDoc = `---
title: React
summary: Component-based UI development with React.
tags: [frontend, ui]
---

# React

Build interfaces as a tree of components. Keep state close to where it
is used and lift it only when two components genuinely share it.

## Conventions

- One component per file, named like the file.
- Derive state where possible instead of syncing copies.
`

// newInitCommand creates the `skillforge init` command. It needs no App:
// scaffolding writes fixed content and reads nothing.
func newInitCommand() *cobra.Command {
	var force bool

	initCmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a starter skillset.cue",
		Long: `Create a starter skillset.cue with example skills, categories,
agents, and a stack, plus one example instruction document under docs/.

The scaffold validates and compiles as-is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runInit(cmd, dir, force)
		},
	}

	initCmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing skillset.cue")

	return initCmd
}

func runInit(cmd *cobra.Command, dir string, force bool) error {
	stdout := cmd.OutOrStdout()
	target := filepath.Join(dir, skillset.DefaultFileName)

	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("file '%s' already exists. Use --force to overwrite", target)
	}

	if err := os.MkdirAll(filepath.Join(dir, "docs"), 0o755); err != nil {
		return fmt.Errorf("failed to create docs directory: %w", err)
	}

	if err := os.WriteFile(target, []byte(starterSkillset), 0o644); err != nil {
		return fmt.Errorf("failed to write skillset: %w", err)
	}

	docPath := filepath.Join(dir, "docs", "react.md")
	if err := os.WriteFile(docPath, []byte(starterInstructionDoc), 0o644); err != nil {
		return fmt.Errorf("failed to write instruction document: %w", err)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		absTarget = target
	}
	fmt.Fprintf(stdout, "%s Created %s\n", successIcon, absTarget)
	fmt.Fprintf(stdout, "%s Created %s\n", successIcon, docPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, SubtitleStyle.Render("Next steps:"))
	fmt.Fprintln(stdout, "  1. Edit skillset.cue to declare your own skills and agents")
	fmt.Fprintln(stdout, "  2. Run 'skillforge validate' to check the document")
	fmt.Fprintln(stdout, "  3. Run 'skillforge build' to compile the agent bundle")

	return nil
}
