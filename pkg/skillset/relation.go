// SPDX-License-Identifier: MPL-2.0

package skillset

import "github.com/skillforge/skillforge/pkg/types"

// RelationKind identifies one of the five relation sets a skill may declare.
type RelationKind string

const (
	// RelationRequires marks hard dependencies: selecting the skill pulls
	// every target into the selection.
	RelationRequires RelationKind = "requires"
	// RelationConflictsWith marks mutual exclusion. The relation is symmetric
	// in effect even when declared on one side only.
	RelationConflictsWith RelationKind = "conflicts_with"
	// RelationRecommends marks soft dependencies surfaced as advisories.
	RelationRecommends RelationKind = "recommends"
	// RelationDiscourages marks soft anti-dependencies surfaced as advisories.
	RelationDiscourages RelationKind = "discourages"
	// RelationCompatibleWith is documentation-grade metadata: an explicit
	// statement that two skills work well together. It never affects
	// resolution.
	RelationCompatibleWith RelationKind = "compatible_with"
)

// relationKinds lists all kinds in declaration order. Iteration over a
// skill's relations must use this order so error and advisory output is
// deterministic.
var relationKinds = [...]RelationKind{
	RelationRequires,
	RelationConflictsWith,
	RelationRecommends,
	RelationDiscourages,
	RelationCompatibleWith,
}

// String returns the document-facing spelling of the kind.
func (k RelationKind) String() string { return string(k) }

// IsValid reports whether k is one of the five declared kinds.
func (k RelationKind) IsValid() bool {
	for _, known := range relationKinds {
		if k == known {
			return true
		}
	}
	return false
}

// Relation pairs a kind with its declared targets.
type Relation struct {
	Kind    RelationKind
	Targets []types.SkillID
}

// Relations returns the skill's five relation sets as a fixed-order slice.
// Kinds with no targets are included with a nil target slice so callers can
// iterate all kinds uniformly.
func (s *Skill) Relations() []Relation {
	return []Relation{
		{Kind: RelationRequires, Targets: s.Requires},
		{Kind: RelationConflictsWith, Targets: s.ConflictsWith},
		{Kind: RelationRecommends, Targets: s.Recommends},
		{Kind: RelationDiscourages, Targets: s.Discourages},
		{Kind: RelationCompatibleWith, Targets: s.CompatibleWith},
	}
}
