// SPDX-License-Identifier: MPL-2.0

// Package assemble turns a resolution result into the agent's final
// activation entries: which skills are preloaded into the artifact and which
// stay on-demand. Assembly never changes the skill set itself. Membership
// is the resolver's job; this package only decides modes and keeps the
// resolver's deterministic ordering.
package assemble

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/skillforge/skillforge/internal/resolve"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"
)

// ErrInvalidHint is the sentinel error wrapped by InvalidHintError.
var ErrInvalidHint = errors.New("invalid activation hint")

type (
	// Hints maps skill IDs to explicitly chosen activation modes. The map
	// is the product of merging declared selections, stack entries, and CLI
	// flags, where later sources overwrite earlier ones before Assemble
	// runs.
	Hints map[types.SkillID]skillset.ActivationMode

	// ActivationEntry pairs a resolved skill with its final activation mode.
	ActivationEntry struct {
		ID   types.SkillID
		Mode skillset.ActivationMode
	}

	// ResolvedAgent is an assembled agent: ordered activation entries ready
	// for versioning and rendering.
	ResolvedAgent struct {
		Name    types.AgentName
		Entries []ActivationEntry
	}

	// InvalidHintError reports a hint carrying an activation mode outside
	// the two declared ones.
	InvalidHintError struct {
		Skill types.SkillID
		Mode  skillset.ActivationMode
	}
)

// Error implements the error interface for InvalidHintError.
func (e *InvalidHintError) Error() string {
	return fmt.Sprintf("skill %q: invalid activation mode %q", e.Skill, e.Mode)
}

// Unwrap returns ErrInvalidHint for errors.Is() compatibility.
func (e *InvalidHintError) Unwrap() error { return ErrInvalidHint }

// Assemble applies the activation rules to a resolution result:
//   - an explicitly hinted mode wins;
//   - a skill pulled in purely via requires inherits the final mode of the
//     skill that pulled it in;
//   - everything else defaults to on-demand.
//
// Entries keep the resolver's order. Hints for skills outside the resolved
// set are ignored; requested IDs were validated before this point.
func Assemble(res *resolve.Result, hints Hints) (*ResolvedAgent, error) {
	for _, id := range slices.Sorted(maps.Keys(hints)) {
		if !hints[id].IsValid() {
			return nil, &InvalidHintError{Skill: id, Mode: hints[id]}
		}
	}

	modes := make(map[types.SkillID]skillset.ActivationMode, len(res.Entries))
	entries := make([]ActivationEntry, 0, len(res.Entries))

	for _, e := range res.Entries {
		mode, hinted := hints[e.ID]
		if !hinted {
			mode = skillset.ModeOnDemand
			if e.RequiredBy != "" {
				// The puller always precedes its dependents in the
				// resolver's ordering, so its mode is already final.
				if inherited, ok := modes[e.RequiredBy]; ok {
					mode = inherited
				}
			}
		}
		modes[e.ID] = mode
		entries = append(entries, ActivationEntry{ID: e.ID, Mode: mode})
	}

	return &ResolvedAgent{Name: res.Agent, Entries: entries}, nil
}

// Preloaded returns the entries with mode preloaded, in order.
func (a *ResolvedAgent) Preloaded() []ActivationEntry {
	return a.filter(skillset.ModePreloaded)
}

// OnDemand returns the entries with mode on-demand, in order.
func (a *ResolvedAgent) OnDemand() []ActivationEntry {
	return a.filter(skillset.ModeOnDemand)
}

func (a *ResolvedAgent) filter(mode skillset.ActivationMode) []ActivationEntry {
	var out []ActivationEntry
	for _, e := range a.Entries {
		if e.Mode == mode {
			out = append(out, e)
		}
	}
	return out
}
