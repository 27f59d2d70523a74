// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/skillforge/skillforge/pkg/skilldoc"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// newCatalogCommand creates the `skillforge catalog` command tree for
// inspecting the skill catalog without compiling anything.
func newCatalogCommand(app *App) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the skill catalog",
		Long: `Inspect the skills declared in the skillset document.

Use 'catalog list' for an overview grouped by category and
'catalog show' for one skill's full metadata, relations, and rendered
instruction document.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	catalogCmd.AddCommand(newCatalogListCommand(app))
	catalogCmd.AddCommand(newCatalogShowCommand(app))

	return catalogCmd
}

// newCatalogListCommand creates `skillforge catalog list`.
func newCatalogListCommand(app *App) *cobra.Command {
	var (
		skillsetPath   string
		categoryFilter string
	)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog skills grouped by category",
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

			return listSkills(cmd, cat.Document(), categoryFilter)
		},
	}

	listCmd.Flags().StringVar(&skillsetPath, "skillset", "", "path to the skillset document (default is ./skillset.cue)")
	listCmd.Flags().StringVar(&categoryFilter, "category", "", "show only skills of the named category")

	return listCmd
}

// listSkills renders the catalog grouped by category in declaration order.
func listSkills(cmd *cobra.Command, doc *skillset.Document, categoryFilter string) error {
	stdout := cmd.OutOrStdout()

	categoryStyle := lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	legendStyle := lipgloss.NewStyle().Foreground(ColorVerbose).Italic(true)

	if categoryFilter != "" && doc.GetCategory(categoryFilter) == nil {
		err := fmt.Errorf("unknown category %q (declared: %s)", categoryFilter, categoryNames(doc))
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", errorIcon, err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: types.ExitValidation, Err: err}
	}

	title := "Skill Catalog"
	if doc.Name != "" {
		title += ": " + doc.Name
	}
	fmt.Fprintln(stdout, reportTitleStyle.Render(title))
	fmt.Fprintln(stdout, legendStyle.Render("  (docs = has instruction document)"))
	fmt.Fprintln(stdout)

	if len(doc.Skills) == 0 {
		fmt.Fprintln(stdout, SubtitleStyle.Render("  (no skills declared)"))
		return nil
	}

	for i := range doc.Categories {
		category := &doc.Categories[i]
		if categoryFilter != "" && category.ID != categoryFilter {
			continue
		}

		fmt.Fprintln(stdout, categoryStyle.Render(categoryHeading(category)))
		for j := range doc.Skills {
			sk := &doc.Skills[j]
			if sk.Category != category.ID {
				continue
			}
			fmt.Fprintln(stdout, skillLine(sk))
		}
		fmt.Fprintln(stdout)
	}

	return nil
}

// categoryHeading formats a category group header with its constraint tags.
func categoryHeading(category *skillset.Category) string {
	var tags []string
	if category.Exclusive {
		tags = append(tags, "exclusive")
	}
	if category.Required {
		tags = append(tags, "required")
	}
	if len(tags) == 0 {
		return fmt.Sprintf("%s:", category.ID)
	}
	return fmt.Sprintf("%s (%s):", category.ID, strings.Join(tags, ", "))
}

// skillLine formats one skill row: ID, name, relation counts, docs marker.
func skillLine(sk *skillset.Skill) string {
	line := fmt.Sprintf("  %s - %s", SkillStyle.Render(string(sk.ID)), sk.Name)

	if summary := relationSummary(sk); summary != "" {
		line += " " + issueTagStyle.Render("["+summary+"]")
	}
	if sk.Instructions != "" {
		line += " " + VerboseStyle.Render("(docs)")
	}
	return line
}

// relationSummary compresses a skill's resolution-relevant relations into
// counts. Kinds with no targets are omitted; compatible_with never affects
// resolution and is only shown by `catalog show`.
func relationSummary(sk *skillset.Skill) string {
	var parts []string
	if n := len(sk.Requires); n > 0 {
		parts = append(parts, fmt.Sprintf("requires %d", n))
	}
	if n := len(sk.ConflictsWith); n > 0 {
		parts = append(parts, fmt.Sprintf("conflicts %d", n))
	}
	if n := len(sk.Recommends); n > 0 {
		parts = append(parts, fmt.Sprintf("recommends %d", n))
	}
	if n := len(sk.Discourages); n > 0 {
		parts = append(parts, fmt.Sprintf("discourages %d", n))
	}
	return strings.Join(parts, ", ")
}

func categoryNames(doc *skillset.Document) string {
	names := make([]string, 0, len(doc.Categories))
	for i := range doc.Categories {
		names = append(names, doc.Categories[i].ID)
	}
	return strings.Join(names, ", ")
}

// newCatalogShowCommand creates `skillforge catalog show`.
func newCatalogShowCommand(app *App) *cobra.Command {
	var skillsetPath string

	showCmd := &cobra.Command{
		Use:   "show <skill-id>",
		Short: "Show one skill's metadata, relations, and instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigOrDefaults(cmd.Context(), app)
			if err != nil {
				return err
			}

			cat, err := loadCatalog(cmd, app, resolveSkillsetPath(skillsetPath, cfg))
			if err != nil {
				return err
			}

			sk, ok := cat.Skill(types.SkillID(args[0]))
			if !ok {
				lookupErr := fmt.Errorf("unknown skill %q", args[0])
				fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", errorIcon, lookupErr)
				cmd.SilenceUsage = true
				cmd.SilenceErrors = true
				return &ExitError{Code: types.ExitValidation, Err: lookupErr}
			}

			return showSkill(cmd, cat.Document(), sk)
		},
	}

	showCmd.Flags().StringVar(&skillsetPath, "skillset", "", "path to the skillset document (default is ./skillset.cue)")

	return showCmd
}

// showSkill renders one skill's full card: metadata, every declared
// relation in fixed order, and the instruction document rendered as
// terminal markdown.
func showSkill(cmd *cobra.Command, doc *skillset.Document, sk *skillset.Skill) error {
	stdout := cmd.OutOrStdout()

	fmt.Fprintln(stdout, reportTitleStyle.Render(sk.Name))
	fmt.Fprintf(stdout, "%s ID:       %s\n", infoIcon, SkillStyle.Render(string(sk.ID)))
	fmt.Fprintf(stdout, "%s Category: %s\n", infoIcon, categoryLabel(doc, sk.Category))
	if sk.Description != "" {
		fmt.Fprintf(stdout, "%s About:    %s\n", infoIcon, sk.Description)
	}
	if sk.Hint != "" {
		fmt.Fprintf(stdout, "%s Hint:     %s\n", infoIcon, sk.Hint)
	}

	printRelations(stdout, sk)

	if sk.Instructions == "" {
		fmt.Fprintln(stdout)
		fmt.Fprintf(stdout, "%s No instruction document declared\n", infoIcon)
		return nil
	}

	path := doc.InstructionsPath(sk)
	instructionDoc, err := skilldoc.Load(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", errorIcon, err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		code := types.ExitIO
		if errors.Is(err, fs.ErrNotExist) {
			code = types.ExitValidation
		}
		return &ExitError{Code: code, Err: err}
	}

	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%s Instructions: %s\n", infoIcon, pathStyle.Render(path))
	printDocMeta(stdout, &instructionDoc.Meta)
	fmt.Fprintln(stdout)

	rendered, renderErr := glamour.Render(instructionDoc.Body, "dark")
	if renderErr != nil {
		// Fall back to the raw markdown rather than hiding the document.
		fmt.Fprintln(stdout, instructionDoc.Body)
		return nil
	}
	fmt.Fprint(stdout, rendered)
	return nil
}

// categoryLabel formats a category reference including its constraint tags.
func categoryLabel(doc *skillset.Document, id string) string {
	category := doc.GetCategory(id)
	if category == nil {
		return id
	}
	heading := categoryHeading(category)
	return strings.TrimSuffix(heading, ":")
}

// printRelations lists every declared relation set in fixed kind order so
// output is deterministic. Kinds with no targets are skipped.
func printRelations(w io.Writer, sk *skillset.Skill) {
	for _, rel := range sk.Relations() {
		if len(rel.Targets) == 0 {
			continue
		}
		targets := make([]string, 0, len(rel.Targets))
		for _, t := range rel.Targets {
			targets = append(targets, SkillStyle.Render(string(t)))
		}
		fmt.Fprintf(w, "%s %s: %s\n", infoIcon, rel.Kind, strings.Join(targets, ", "))
	}
}

// printDocMeta shows the optional frontmatter fields of an instruction
// document.
func printDocMeta(w io.Writer, meta *skilldoc.Meta) {
	if meta.Title != "" {
		fmt.Fprintf(w, "%s Title: %s\n", infoIcon, meta.Title)
	}
	if meta.Summary != "" {
		fmt.Fprintf(w, "%s Summary: %s\n", infoIcon, meta.Summary)
	}
	if len(meta.Tags) > 0 {
		fmt.Fprintf(w, "%s Tags: %s\n", infoIcon, strings.Join(meta.Tags, ", "))
	}
}
