// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"

	"github.com/skillforge/skillforge/internal/catalog"
	"github.com/skillforge/skillforge/pkg/types"
)

type (
	// Request is one agent's resolution input: the merged, ordered skill
	// selection. Duplicate IDs are legal and collapse to the first
	// occurrence.
	Request struct {
		Agent  types.AgentName
		Skills []types.SkillID
	}

	// Entry is one resolved skill with its provenance.
	Entry struct {
		ID types.SkillID
		// Requested is true when the skill was selected directly rather
		// than pulled in via requires expansion.
		Requested bool
		// RequiredBy names the skill whose requires relation first pulled
		// this entry in. Empty for directly requested skills.
		RequiredBy types.SkillID
	}

	// Result is a successful resolution: the expanded, deduplicated,
	// deterministically ordered selection plus any advisories.
	Result struct {
		Agent      types.AgentName
		Entries    []Entry
		Advisories []Advisory
	}
)

// Resolve applies req against the catalog's constraint graph. On success the
// result covers the requested skills plus every transitively required skill;
// on failure the error wraps one or more of the typed resolution errors.
func Resolve(cat *catalog.Catalog, req Request) (*Result, error) {
	entries, index, err := requestedEntries(cat, req)
	if err != nil {
		return nil, err
	}

	if err := checkConflicts(req.Agent, cat, entries); err != nil {
		return nil, err
	}

	entries, err = expand(req.Agent, cat, entries, index)
	if err != nil {
		return nil, err
	}

	if err := detectCycles(req.Agent, cat, entries); err != nil {
		return nil, err
	}

	if err := checkCategories(req.Agent, cat, entries); err != nil {
		return nil, err
	}

	return &Result{
		Agent:      req.Agent,
		Entries:    entries,
		Advisories: collectAdvisories(cat, entries, index),
	}, nil
}

// Selected reports whether the result contains id.
func (r *Result) Selected(id types.SkillID) bool {
	for _, e := range r.Entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// requestedEntries deduplicates the request (first occurrence wins) and
// rejects IDs absent from the catalog. All unknown IDs are reported together.
func requestedEntries(cat *catalog.Catalog, req Request) ([]Entry, map[types.SkillID]struct{}, error) {
	var (
		entries []Entry
		errs    []error
	)
	index := make(map[types.SkillID]struct{}, len(req.Skills))

	for _, id := range req.Skills {
		if _, seen := index[id]; seen {
			continue
		}
		index[id] = struct{}{}
		if _, ok := cat.Skill(id); !ok {
			errs = append(errs, &UnknownSkillError{Agent: req.Agent, ID: id})
			continue
		}
		entries = append(entries, Entry{ID: id, Requested: true})
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return entries, index, nil
}

// checkConflicts scans all unordered pairs in selection order and reports
// every conflicting pair.
func checkConflicts(agent types.AgentName, cat *catalog.Catalog, entries []Entry) error {
	var errs []error
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if cat.Conflicts(entries[i].ID, entries[j].ID) {
				errs = append(errs, &ConflictError{Agent: agent, A: entries[i].ID, B: entries[j].ID})
			}
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// expand grows the selection to its requires fixed point. Each pass walks
// the entries added by the previous pass and appends their unseen requires
// targets in declaration order; conflicts are re-checked after every growing
// pass so auto-added skills are held to the same rules as requested ones.
// The loop is bounded: every skill enters the selection at most once.
func expand(agent types.AgentName, cat *catalog.Catalog, entries []Entry, index map[types.SkillID]struct{}) ([]Entry, error) {
	for start := 0; start < len(entries); {
		end := len(entries)
		for i := start; i < end; i++ {
			sk, ok := cat.Skill(entries[i].ID)
			if !ok {
				continue
			}
			for _, target := range sk.Requires {
				if _, seen := index[target]; seen {
					continue
				}
				if _, ok := cat.Skill(target); !ok {
					return nil, &MissingDependencyError{Agent: agent, Skill: entries[i].ID, Required: target}
				}
				index[target] = struct{}{}
				entries = append(entries, Entry{ID: target, RequiredBy: entries[i].ID})
			}
		}
		start = end

		if len(entries) > end {
			if err := checkConflicts(agent, cat, entries); err != nil {
				return nil, err
			}
		}
	}
	return entries, nil
}

// walkFrame is one level of the iterative cycle walk: a skill plus the index
// of the next requires edge to follow.
type walkFrame struct {
	id   types.SkillID
	next int
}

// detectCycles walks requires edges from every resolved entry with an
// explicit stack, flagging back-edges. The expansion loop itself terminates
// on cyclic graphs, so this is a dedicated guard: a requires cycle is a
// catalog bug the user must see, not something to silently tolerate.
func detectCycles(agent types.AgentName, cat *catalog.Catalog, entries []Entry) error {
	const (
		white = iota // unvisited
		gray         // on the current walk
		black        // fully explored
	)
	color := make(map[types.SkillID]int, len(entries))

	for _, root := range entries {
		if color[root.ID] != white {
			continue
		}
		color[root.ID] = gray
		stack := []walkFrame{{id: root.ID}}

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			sk, ok := cat.Skill(top.id)
			if !ok || top.next >= len(sk.Requires) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}

			target := sk.Requires[top.next]
			top.next++

			switch color[target] {
			case white:
				color[target] = gray
				stack = append(stack, walkFrame{id: target})
			case gray:
				return &DependencyCycleError{Agent: agent, Chain: cycleChain(stack, target)}
			}
		}
	}
	return nil
}

// cycleChain slices the walk stack from the back-edge target onward and
// closes the loop by repeating the target at the end.
func cycleChain(stack []walkFrame, target types.SkillID) []types.SkillID {
	start := 0
	for i := range stack {
		if stack[i].id == target {
			start = i
			break
		}
	}
	chain := make([]types.SkillID, 0, len(stack)-start+1)
	for _, f := range stack[start:] {
		chain = append(chain, f.id)
	}
	return append(chain, target)
}

// checkCategories enforces exclusivity and required-category rules over the
// expanded selection. Categories are visited in document order; all
// violations are reported together.
func checkCategories(agent types.AgentName, cat *catalog.Catalog, entries []Entry) error {
	selected := make(map[string][]types.SkillID)
	for _, e := range entries {
		sk, ok := cat.Skill(e.ID)
		if !ok {
			continue
		}
		selected[sk.Category] = append(selected[sk.Category], e.ID)
	}

	var errs []error
	doc := cat.Document()
	for i := range doc.Categories {
		c := &doc.Categories[i]
		members := selected[c.ID]
		if c.Exclusive && len(members) > 1 {
			errs = append(errs, &ExclusivityError{Agent: agent, Category: c.ID, Skills: members})
		}
		if c.Required && len(members) == 0 {
			errs = append(errs, &MissingCategoryError{Agent: agent, Category: c.ID})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// collectAdvisories gathers unmet recommends and met discourages relations.
// Order is deterministic: selection order, then each skill's declaration
// order (recommends before discourages).
func collectAdvisories(cat *catalog.Catalog, entries []Entry, index map[types.SkillID]struct{}) []Advisory {
	var advisories []Advisory
	for _, e := range entries {
		sk, ok := cat.Skill(e.ID)
		if !ok {
			continue
		}
		for _, target := range sk.Recommends {
			if _, selected := index[target]; !selected {
				advisories = append(advisories, Advisory{Kind: AdvisoryRecommends, Skill: e.ID, Target: target})
			}
		}
		for _, target := range sk.Discourages {
			if _, selected := index[target]; selected {
				advisories = append(advisories, Advisory{Kind: AdvisoryDiscourages, Skill: e.ID, Target: target})
			}
		}
	}
	return advisories
}
