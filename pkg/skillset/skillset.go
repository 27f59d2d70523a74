// SPDX-License-Identifier: MPL-2.0

package skillset

import (
	"path/filepath"

	"github.com/skillforge/skillforge/pkg/types"
)

// DefaultFileName is the base name skillforge looks for when no explicit
// skillset path is given.
const DefaultFileName = "skillset.cue"

type (
	// Document represents a parsed skillset.cue file: the full catalog source
	// plus the declared agents and stacks.
	Document struct {
		// Name is an optional human-readable name for the skillset.
		Name string `json:"name,omitempty"`
		// Description optionally describes what the skillset covers.
		Description string `json:"description,omitempty"`
		// Categories declares the categorical slots skills occupy.
		Categories []Category `json:"categories"`
		// Skills declares the catalog of selectable skills.
		Skills []Skill `json:"skills"`
		// Stacks declares named per-agent preselections (optional).
		Stacks []Stack `json:"stacks,omitempty"`
		// Agents declares the fixed set of known agents.
		Agents []Agent `json:"agents"`

		// FilePath stores the path this document was loaded from (not in CUE).
		FilePath string `json:"-"`
	}

	// Skill is a reusable capability unit. Relations reference other skills
	// by ID; targets must exist in the same document (enforced by the
	// catalog, not here).
	Skill struct {
		// ID is the globally unique, stable identifier
		// ("domain-category-name").
		ID types.SkillID `json:"id"`
		// Name is the short human-readable title.
		Name string `json:"name"`
		// Description optionally expands on what the skill provides.
		Description string `json:"description,omitempty"`
		// Category names the categorical slot this skill occupies.
		Category string `json:"category"`
		// Hint is the one-line usage hint shown for on-demand activation.
		Hint string `json:"hint,omitempty"`
		// Instructions is an optional path to the skill's instruction
		// document, relative to the skillset file.
		Instructions string `json:"instructions,omitempty"`

		Requires       []types.SkillID `json:"requires,omitempty"`
		ConflictsWith  []types.SkillID `json:"conflicts_with,omitempty"`
		Recommends     []types.SkillID `json:"recommends,omitempty"`
		Discourages    []types.SkillID `json:"discourages,omitempty"`
		CompatibleWith []types.SkillID `json:"compatible_with,omitempty"`
	}

	// Category is a named grouping of mutually related skills.
	Category struct {
		// ID names the category; skills reference it via their category field.
		ID string `json:"id"`
		// Description optionally documents the category's purpose.
		Description string `json:"description,omitempty"`
		// Exclusive means at most one skill of this category per agent.
		Exclusive bool `json:"exclusive,omitempty"`
		// Required means at least one skill of this category per agent.
		Required bool `json:"required,omitempty"`
	}

	// Selection is one requested skill within an agent's or stack's list,
	// with an optional explicit activation hint. A nil Preload means "no
	// explicit preference"; the assembler then applies inheritance and
	// defaults.
	Selection struct {
		ID      types.SkillID `json:"id"`
		Preload *bool         `json:"preload,omitempty"`
	}

	// Agent declares one known role: static metadata plus its default
	// skill selection.
	Agent struct {
		// Name identifies the agent and doubles as the output file stem.
		Name types.AgentName `json:"name"`
		// Description is rendered into the produced artifact.
		Description string `json:"description"`
		// Tools lists the tool names available to the agent (static
		// metadata handed to the renderer).
		Tools []string `json:"tools,omitempty"`
		// Skills is the agent's declared default selection.
		Skills []Selection `json:"skills,omitempty"`
	}

	// Stack is a named preset: per-agent skill preselections applied on top
	// of the agents' declared selections.
	Stack struct {
		// Name identifies the stack for --stack lookups.
		Name string `json:"name"`
		// Description optionally documents when to use the stack.
		Description string `json:"description,omitempty"`
		// Agents maps agent name to the skills the stack adds to it.
		// Referenced agents must be declared in the same document.
		Agents map[string][]Selection `json:"agents"`
	}
)

// GetSkill finds a skill by ID. Returns nil if absent.
func (d *Document) GetSkill(id types.SkillID) *Skill {
	for i := range d.Skills {
		if d.Skills[i].ID == id {
			return &d.Skills[i]
		}
	}
	return nil
}

// GetCategory finds a category by ID. Returns nil if absent.
func (d *Document) GetCategory(id string) *Category {
	for i := range d.Categories {
		if d.Categories[i].ID == id {
			return &d.Categories[i]
		}
	}
	return nil
}

// GetAgent finds a declared agent by name. Returns nil if absent.
func (d *Document) GetAgent(name types.AgentName) *Agent {
	for i := range d.Agents {
		if d.Agents[i].Name == name {
			return &d.Agents[i]
		}
	}
	return nil
}

// GetStack finds a stack by name. Returns nil if absent.
func (d *Document) GetStack(name string) *Stack {
	for i := range d.Stacks {
		if d.Stacks[i].Name == name {
			return &d.Stacks[i]
		}
	}
	return nil
}

// InstructionsPath resolves a skill's instruction document path against the
// skillset file location. Returns "" when the skill declares no instructions.
// Instruction paths in CUE use forward slashes; they are converted to the
// native separator here.
func (d *Document) InstructionsPath(s *Skill) string {
	if s == nil || s.Instructions == "" {
		return ""
	}
	native := filepath.FromSlash(s.Instructions)
	if filepath.IsAbs(native) {
		return native
	}
	return filepath.Join(filepath.Dir(d.FilePath), native)
}
