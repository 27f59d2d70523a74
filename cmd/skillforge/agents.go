// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/skillforge/skillforge/pkg/skillset"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// selectionLegend explains the activation markers used by the agents and
// stacks listings.
const selectionLegend = "  (* = explicit preload, ~ = explicit on-demand)"

// newAgentsCommand creates `skillforge agents`: a listing of the declared
// agents with their tools and default skill selections.
func newAgentsCommand(app *App) *cobra.Command {
	var skillsetPath string

	agentsCmd := &cobra.Command{
		Use:   "agents",
		Short: "List declared agents and their default selections",
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

			listAgents(cmd, cat.Document())
			return nil
		},
	}

	agentsCmd.Flags().StringVar(&skillsetPath, "skillset", "", "path to the skillset document (default is ./skillset.cue)")

	return agentsCmd
}

// listAgents renders the declared agents in declaration order.
func listAgents(cmd *cobra.Command, doc *skillset.Document) {
	stdout := cmd.OutOrStdout()

	legendStyle := lipgloss.NewStyle().Foreground(ColorVerbose).Italic(true)
	labelStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	fmt.Fprintln(stdout, reportTitleStyle.Render("Declared Agents"))
	fmt.Fprintln(stdout, legendStyle.Render(selectionLegend))
	fmt.Fprintln(stdout)

	for i := range doc.Agents {
		agent := &doc.Agents[i]
		fmt.Fprintf(stdout, "%s - %s\n", agentNameStyle.Render(string(agent.Name)), agent.Description)
		if len(agent.Tools) > 0 {
			fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("tools: "), strings.Join(agent.Tools, ", "))
		}
		fmt.Fprintf(stdout, "  %s %s\n", labelStyle.Render("skills:"), formatSelections(agent.Skills))
		fmt.Fprintln(stdout)
	}
}

// formatSelections renders a selection list with activation markers:
// trailing * for an explicit preload, trailing ~ for an explicit on-demand
// pin, nothing for "let the assembler decide".
func formatSelections(selections []skillset.Selection) string {
	if len(selections) == 0 {
		return SubtitleStyle.Render("(none)")
	}

	parts := make([]string, 0, len(selections))
	for _, sel := range selections {
		s := SkillStyle.Render(string(sel.ID))
		switch {
		case sel.Preload == nil:
		case *sel.Preload:
			s += "*"
		default:
			s += "~"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}
