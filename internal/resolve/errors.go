// SPDX-License-Identifier: MPL-2.0

package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/skillforge/skillforge/pkg/types"
)

// Sentinel errors for the resolution failure classes. The typed errors below
// wrap these, so callers can classify with errors.Is and still extract detail
// with errors.As.
var (
	ErrUnknownSkill      = errors.New("unknown skill")
	ErrConflict          = errors.New("conflicting skills")
	ErrMissingDependency = errors.New("missing dependency")
	ErrDependencyCycle   = errors.New("dependency cycle")
	ErrExclusivity       = errors.New("exclusive category violation")
	ErrMissingCategory   = errors.New("required category unsatisfied")
)

type (
	// UnknownSkillError reports a requested skill ID that is not in the
	// catalog. Unknown IDs are rejected, never silently dropped.
	UnknownSkillError struct {
		Agent types.AgentName
		ID    types.SkillID
	}

	// ConflictError reports two selected skills that are mutually exclusive.
	// A and B appear in selection order regardless of which side declared
	// the conflict.
	ConflictError struct {
		Agent types.AgentName
		A     types.SkillID
		B     types.SkillID
	}

	// MissingDependencyError reports a requires target that is not in the
	// catalog. Catalogs built by catalog.Build cannot contain dangling
	// targets, so this guards hand-assembled inputs.
	MissingDependencyError struct {
		Agent    types.AgentName
		Skill    types.SkillID
		Required types.SkillID
	}

	// DependencyCycleError reports a cycle in the requires graph. Chain
	// lists the cycle path with the entry skill repeated at the end.
	DependencyCycleError struct {
		Agent types.AgentName
		Chain []types.SkillID
	}

	// ExclusivityError reports an exclusive category with more than one
	// selected member. Skills appear in selection order.
	ExclusivityError struct {
		Agent    types.AgentName
		Category string
		Skills   []types.SkillID
	}

	// MissingCategoryError reports a required category with no selected
	// member.
	MissingCategoryError struct {
		Agent    types.AgentName
		Category string
	}
)

// Error implements the error interface for UnknownSkillError.
func (e *UnknownSkillError) Error() string {
	return fmt.Sprintf("agent %q: skill %q is not in the catalog", e.Agent, e.ID)
}

// Unwrap returns ErrUnknownSkill for errors.Is() compatibility.
func (e *UnknownSkillError) Unwrap() error { return ErrUnknownSkill }

// Error implements the error interface for ConflictError.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("agent %q: skills %q and %q conflict", e.Agent, e.A, e.B)
}

// Unwrap returns ErrConflict for errors.Is() compatibility.
func (e *ConflictError) Unwrap() error { return ErrConflict }

// Error implements the error interface for MissingDependencyError.
func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("agent %q: skill %q requires %q, which is not in the catalog", e.Agent, e.Skill, e.Required)
}

// Unwrap returns ErrMissingDependency for errors.Is() compatibility.
func (e *MissingDependencyError) Unwrap() error { return ErrMissingDependency }

// Error implements the error interface for DependencyCycleError.
func (e *DependencyCycleError) Error() string {
	parts := make([]string, len(e.Chain))
	for i, id := range e.Chain {
		parts[i] = string(id)
	}
	return fmt.Sprintf("agent %q: requires cycle: %s", e.Agent, strings.Join(parts, " -> "))
}

// Unwrap returns ErrDependencyCycle for errors.Is() compatibility.
func (e *DependencyCycleError) Unwrap() error { return ErrDependencyCycle }

// Error implements the error interface for ExclusivityError.
func (e *ExclusivityError) Error() string {
	parts := make([]string, len(e.Skills))
	for i, id := range e.Skills {
		parts[i] = string(id)
	}
	return fmt.Sprintf("agent %q: category %q allows one skill but %d are selected: %s",
		e.Agent, e.Category, len(e.Skills), strings.Join(parts, ", "))
}

// Unwrap returns ErrExclusivity for errors.Is() compatibility.
func (e *ExclusivityError) Unwrap() error { return ErrExclusivity }

// Error implements the error interface for MissingCategoryError.
func (e *MissingCategoryError) Error() string {
	return fmt.Sprintf("agent %q: required category %q has no selected skill", e.Agent, e.Category)
}

// Unwrap returns ErrMissingCategory for errors.Is() compatibility.
func (e *MissingCategoryError) Unwrap() error { return ErrMissingCategory }
