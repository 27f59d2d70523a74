// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/skillforge/skillforge/pkg/skillset"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// newStacksCommand creates `skillforge stacks`: a listing of the declared
// stacks and the skills each one adds per agent.
func newStacksCommand(app *App) *cobra.Command {
	var skillsetPath string

	stacksCmd := &cobra.Command{
		Use:   "stacks",
		Short: "List stacks and their per-agent preselections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOrDefaults(cmd.Context(), app)
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cmd, app, resolveSkillsetPath(skillsetPath, cfg))
			if err != nil {
				return err
			}

			listStacks(cmd, cat.Document())
			return nil
		},
	}

	stacksCmd.Flags().StringVar(&skillsetPath, "skillset", "", "path to the skillset document (default is ./skillset.cue)")

	return stacksCmd
}

// listStacks renders the declared stacks in declaration order. Per-agent
// lines are sorted by agent name; the document stores them as a map.
func listStacks(cmd *cobra.Command, doc *skillset.Document) {
	stdout := cmd.OutOrStdout()

	legendStyle := lipgloss.NewStyle().Foreground(ColorVerbose).Italic(true)
	stackNameStyle := lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)

	fmt.Fprintln(stdout, reportTitleStyle.Render("Stacks"))
	fmt.Fprintln(stdout, legendStyle.Render(selectionLegend))
	fmt.Fprintln(stdout)

	if len(doc.Stacks) == 0 {
		fmt.Fprintln(stdout, SubtitleStyle.Render("  (no stacks declared)"))
		return
	}

	for i := range doc.Stacks {
		stack := &doc.Stacks[i]
		if stack.Description != "" {
			fmt.Fprintf(stdout, "%s - %s\n", stackNameStyle.Render(stack.Name), stack.Description)
		} else {
			fmt.Fprintln(stdout, stackNameStyle.Render(stack.Name))
		}

		for _, agentName := range slices.Sorted(maps.Keys(stack.Agents)) {
			fmt.Fprintf(stdout, "  %s: %s\n",
				agentNameStyle.Render(agentName),
				formatSelections(stack.Agents[agentName]))
		}
		fmt.Fprintln(stdout)
	}
}
