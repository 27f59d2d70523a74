// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"fmt"

	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"
)

// Sentinel errors for the catalog load failure classes. The typed errors
// below wrap these, so callers can classify with errors.Is and still extract
// detail with errors.As.
var (
	ErrDanglingRelation     = errors.New("dangling relation target")
	ErrSelfRelation         = errors.New("self-referential relation")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrInconsistentCategory = errors.New("inconsistent category")
)

type (
	// DanglingRelationError reports a relation whose target skill is not
	// declared anywhere in the document.
	DanglingRelationError struct {
		Skill  types.SkillID
		Kind   skillset.RelationKind
		Target types.SkillID
	}

	// SelfRelationError reports a skill that lists itself as a relation
	// target.
	SelfRelationError struct {
		Skill types.SkillID
		Kind  skillset.RelationKind
	}

	// UnknownCategoryError reports a skill assigned to a category the
	// document never declares.
	UnknownCategoryError struct {
		Skill    types.SkillID
		Category string
	}

	// InconsistentCategoryError reports a category marked required that has
	// no member skills, which would make every agent unresolvable.
	InconsistentCategoryError struct {
		Category string
	}
)

// Error implements the error interface for DanglingRelationError.
func (e *DanglingRelationError) Error() string {
	return fmt.Sprintf("skill %q: %s target %q is not declared in the catalog", e.Skill, e.Kind, e.Target)
}

// Unwrap returns ErrDanglingRelation for errors.Is() compatibility.
func (e *DanglingRelationError) Unwrap() error { return ErrDanglingRelation }

// Error implements the error interface for SelfRelationError.
func (e *SelfRelationError) Error() string {
	return fmt.Sprintf("skill %q lists itself under %s", e.Skill, e.Kind)
}

// Unwrap returns ErrSelfRelation for errors.Is() compatibility.
func (e *SelfRelationError) Unwrap() error { return ErrSelfRelation }

// Error implements the error interface for UnknownCategoryError.
func (e *UnknownCategoryError) Error() string {
	return fmt.Sprintf("skill %q references unknown category %q", e.Skill, e.Category)
}

// Unwrap returns ErrUnknownCategory for errors.Is() compatibility.
func (e *UnknownCategoryError) Unwrap() error { return ErrUnknownCategory }

// Error implements the error interface for InconsistentCategoryError.
func (e *InconsistentCategoryError) Error() string {
	return fmt.Sprintf("category %q is marked required but has no member skills", e.Category)
}

// Unwrap returns ErrInconsistentCategory for errors.Is() compatibility.
func (e *InconsistentCategoryError) Unwrap() error { return ErrInconsistentCategory }
