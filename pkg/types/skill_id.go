// SPDX-License-Identifier: MPL-2.0

// Package types defines cross-cutting DDD Value Types used by multiple domain
// packages (skillset, catalog, version, etc.). These are foundation types that
// carry semantic meaning and validation but have no domain-specific dependencies.
//
// This package is a leaf dependency: it imports only the standard library.
// Domain packages import it; it never imports domain packages.
package types

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidSkillID is the sentinel error wrapped by InvalidSkillIDError.
var ErrInvalidSkillID = errors.New("invalid skill id")

// skillIDRegex matches skill identifiers of the form "domain-category-name":
// at least three lowercase alphanumeric segments joined by single dashes.
var skillIDRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z][a-z0-9]*){2,}$`)

type (
	// SkillID represents the globally unique, stable identifier of a skill.
	// IDs follow the "domain-category-name" convention (e.g. "web-framework-react").
	// The zero value ("") is invalid; every skill must carry an ID.
	SkillID string

	// InvalidSkillIDError is returned when a SkillID value does not match
	// the expected "domain-category-name" pattern.
	InvalidSkillIDError struct {
		Value SkillID
	}
)

// String returns the string representation of the SkillID.
func (id SkillID) String() string { return string(id) }

// IsValid returns whether the SkillID matches the "domain-category-name"
// pattern, and a list of validation errors if it does not.
func (id SkillID) IsValid() (bool, []error) {
	if !skillIDRegex.MatchString(string(id)) {
		return false, []error{&InvalidSkillIDError{Value: id}}
	}
	return true, nil
}

// Error implements the error interface for InvalidSkillIDError.
func (e *InvalidSkillIDError) Error() string {
	return fmt.Sprintf("invalid skill id %q: must be lowercase dash-separated segments like \"domain-category-name\"", e.Value)
}

// Unwrap returns ErrInvalidSkillID for errors.Is() compatibility.
func (e *InvalidSkillIDError) Unwrap() error { return ErrInvalidSkillID }
