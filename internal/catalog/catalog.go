// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"

	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"
)

type (
	// Catalog is the validated, query-optimized view of a skillset document.
	// It is immutable after Build, so the resolver and CLI commands may query
	// it concurrently without locking.
	Catalog struct {
		doc        *skillset.Document
		skills     map[types.SkillID]*skillset.Skill
		categories map[string]*skillset.Category
		members    map[string][]types.SkillID
		conflicts  map[conflictPair]struct{}
	}

	// conflictPair is a lexicographically ordered skill pair used as the
	// conflict index key, so a single entry covers both declaration sides.
	conflictPair struct {
		a, b types.SkillID
	}
)

func normalizePair(a, b types.SkillID) conflictPair {
	if b < a {
		a, b = b, a
	}
	return conflictPair{a: a, b: b}
}

// Build validates a document's referential integrity and constructs the
// catalog. All violations are collected and reported together, so a single
// run surfaces every load problem instead of the first one found.
func Build(doc *skillset.Document) (*Catalog, error) {
	c := &Catalog{
		doc:        doc,
		skills:     make(map[types.SkillID]*skillset.Skill, len(doc.Skills)),
		categories: make(map[string]*skillset.Category, len(doc.Categories)),
		members:    make(map[string][]types.SkillID, len(doc.Categories)),
		conflicts:  make(map[conflictPair]struct{}),
	}

	for i := range doc.Categories {
		cat := &doc.Categories[i]
		c.categories[cat.ID] = cat
	}
	for i := range doc.Skills {
		sk := &doc.Skills[i]
		c.skills[sk.ID] = sk
	}

	var errs []error

	for i := range doc.Skills {
		sk := &doc.Skills[i]

		if _, ok := c.categories[sk.Category]; ok {
			c.members[sk.Category] = append(c.members[sk.Category], sk.ID)
		} else {
			errs = append(errs, &UnknownCategoryError{Skill: sk.ID, Category: sk.Category})
		}

		for _, rel := range sk.Relations() {
			for _, target := range rel.Targets {
				if target == sk.ID {
					errs = append(errs, &SelfRelationError{Skill: sk.ID, Kind: rel.Kind})
					continue
				}
				if _, ok := c.skills[target]; !ok {
					errs = append(errs, &DanglingRelationError{Skill: sk.ID, Kind: rel.Kind, Target: target})
					continue
				}
				if rel.Kind == skillset.RelationConflictsWith {
					c.conflicts[normalizePair(sk.ID, target)] = struct{}{}
				}
			}
		}
	}

	// A required category with zero members can never be satisfied, so it is
	// a load error rather than a per-agent resolution error.
	for i := range doc.Categories {
		cat := &doc.Categories[i]
		if cat.Required && len(c.members[cat.ID]) == 0 {
			errs = append(errs, &InconsistentCategoryError{Category: cat.ID})
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}

	return c, nil
}

// Document returns the parsed document the catalog was built from.
func (c *Catalog) Document() *skillset.Document { return c.doc }

// Skill looks up a skill by ID.
func (c *Catalog) Skill(id types.SkillID) (*skillset.Skill, bool) {
	sk, ok := c.skills[id]
	return sk, ok
}

// Category looks up a category by ID.
func (c *Catalog) Category(id string) (*skillset.Category, bool) {
	cat, ok := c.categories[id]
	return cat, ok
}

// Members returns a category's member skill IDs in document order. The
// returned slice is shared; callers must not mutate it.
func (c *Catalog) Members(category string) []types.SkillID {
	return c.members[category]
}

// Conflicts reports whether two skills are mutually exclusive, regardless of
// which side declared the conflicts_with relation.
func (c *Catalog) Conflicts(a, b types.SkillID) bool {
	_, ok := c.conflicts[normalizePair(a, b)]
	return ok
}
