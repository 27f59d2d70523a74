// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidAgentName is the sentinel error wrapped by InvalidAgentNameError.
var ErrInvalidAgentName = errors.New("invalid agent name")

// agentNameRegex matches agent names: a lowercase letter followed by
// lowercase alphanumerics, dashes, or underscores.
var agentNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

type (
	// AgentName represents the name of a declared agent (role). Agent names
	// double as output file stems, so they are restricted to characters safe
	// on every supported filesystem. The zero value ("") is invalid.
	AgentName string

	// InvalidAgentNameError is returned when an AgentName value does not
	// match the expected pattern.
	InvalidAgentNameError struct {
		Value AgentName
	}
)

// String returns the string representation of the AgentName.
func (n AgentName) String() string { return string(n) }

// IsValid returns whether the AgentName is valid, and a list of validation
// errors if it is not.
func (n AgentName) IsValid() (bool, []error) {
	if !agentNameRegex.MatchString(string(n)) {
		return false, []error{&InvalidAgentNameError{Value: n}}
	}
	return true, nil
}

// Error implements the error interface for InvalidAgentNameError.
func (e *InvalidAgentNameError) Error() string {
	return fmt.Sprintf("invalid agent name %q: must start with a lowercase letter and contain only lowercase letters, digits, dashes, or underscores", e.Value)
}

// Unwrap returns ErrInvalidAgentName for errors.Is() compatibility.
func (e *InvalidAgentNameError) Unwrap() error { return ErrInvalidAgentName }
