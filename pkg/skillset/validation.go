// SPDX-License-Identifier: MPL-2.0

package skillset

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/skillforge/skillforge/internal/platform"
	"github.com/skillforge/skillforge/pkg/types"
)

// validate checks document-level rules the CUE schema cannot express:
// identifier uniqueness, self-referential relations, and cross-references
// between stacks and agents. Relation targets pointing at other skills are
// not checked here; that is the catalog's responsibility.
func (d *Document) validate() error {
	if err := d.validateCategories(); err != nil {
		return err
	}
	if err := d.validateSkills(); err != nil {
		return err
	}
	if err := d.validateAgents(); err != nil {
		return err
	}
	return d.validateStacks()
}

func (d *Document) validateCategories() error {
	seen := make(map[string]bool, len(d.Categories))
	for _, cat := range d.Categories {
		if seen[cat.ID] {
			return fmt.Errorf("%s: duplicate category %q", d.FilePath, cat.ID)
		}
		seen[cat.ID] = true
	}
	return nil
}

func (d *Document) validateSkills() error {
	seen := make(map[types.SkillID]bool, len(d.Skills))
	for i := range d.Skills {
		sk := &d.Skills[i]
		if seen[sk.ID] {
			return fmt.Errorf("%s: duplicate skill %q", d.FilePath, sk.ID)
		}
		seen[sk.ID] = true

		for _, rel := range sk.Relations() {
			for _, target := range rel.Targets {
				if target == sk.ID {
					return fmt.Errorf("%s: skill %q lists itself under %s", d.FilePath, sk.ID, rel.Kind)
				}
			}
			if dup := firstDuplicate(rel.Targets); dup != "" {
				return fmt.Errorf("%s: skill %q lists %q twice under %s", d.FilePath, sk.ID, dup, rel.Kind)
			}
		}

		if err := validateInstructionsPath(sk.Instructions); err != nil {
			return fmt.Errorf("%s: skill %q: %w", d.FilePath, sk.ID, err)
		}
	}
	return nil
}

// validateAgents checks agent name uniqueness and portability. Agent names
// double as output file stems, so names Windows reserves for devices are
// rejected here rather than failing at write time on one platform only.
// Duplicate entries within an agent's selection are legal: the assembler
// merges them (later explicit settings win, position follows first
// occurrence).
func (d *Document) validateAgents() error {
	seen := make(map[types.AgentName]bool, len(d.Agents))
	for i := range d.Agents {
		ag := &d.Agents[i]
		if seen[ag.Name] {
			return fmt.Errorf("%s: duplicate agent %q", d.FilePath, ag.Name)
		}
		seen[ag.Name] = true

		if platform.IsWindowsReservedName(string(ag.Name)) {
			return fmt.Errorf("%s: agent name %q is reserved on Windows", d.FilePath, ag.Name)
		}
	}
	return nil
}

func (d *Document) validateStacks() error {
	seen := make(map[string]bool, len(d.Stacks))
	for i := range d.Stacks {
		st := &d.Stacks[i]
		if seen[st.Name] {
			return fmt.Errorf("%s: duplicate stack %q", d.FilePath, st.Name)
		}
		seen[st.Name] = true

		for _, agentName := range slices.Sorted(maps.Keys(st.Agents)) {
			if d.GetAgent(types.AgentName(agentName)) == nil {
				return fmt.Errorf("%s: stack %q references unknown agent %q", d.FilePath, st.Name, agentName)
			}
		}
	}
	return nil
}

// validateInstructionsPath rejects instruction references that would escape
// the skillset directory. Paths are declared with forward slashes and must
// stay relative.
func validateInstructionsPath(path string) error {
	if path == "" {
		return nil
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("instructions path contains null byte")
	}
	if filepath.IsAbs(filepath.FromSlash(path)) {
		return fmt.Errorf("instructions path must be relative, not absolute: %q", path)
	}
	for _, part := range strings.Split(path, "/") {
		if part == ".." {
			return fmt.Errorf("instructions path must not traverse outside the skillset directory: %q", path)
		}
	}
	return nil
}

func firstDuplicate(ids []types.SkillID) types.SkillID {
	seen := make(map[types.SkillID]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return id
		}
		seen[id] = true
	}
	return ""
}
