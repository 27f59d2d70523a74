// SPDX-License-Identifier: MPL-2.0

package compile

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownAgent indicates an agent filter named an agent the
	// skillset does not declare.
	ErrUnknownAgent = errors.New("unknown agent")

	// ErrUnknownStack indicates the requested stack is not declared.
	ErrUnknownStack = errors.New("unknown stack")
)

type (
	// UnknownAgentError identifies an agent filter entry with no
	// matching declaration.
	UnknownAgentError struct {
		Agent string
	}

	// UnknownStackError identifies a requested stack with no matching
	// declaration.
	UnknownStackError struct {
		Stack string
	}

	// ResolutionError aggregates per-agent resolution failures. Every
	// target agent is attempted before the compile fails, so a single
	// run reports all broken agents.
	ResolutionError struct {
		Errs []error
	}
)

func (e *UnknownAgentError) Error() string {
	return fmt.Sprintf("agent %q is not declared in the skillset", e.Agent)
}

// Unwrap returns ErrUnknownAgent for errors.Is() compatibility.
func (e *UnknownAgentError) Unwrap() error { return ErrUnknownAgent }

func (e *UnknownStackError) Error() string {
	return fmt.Sprintf("stack %q is not declared in the skillset", e.Stack)
}

// Unwrap returns ErrUnknownStack for errors.Is() compatibility.
func (e *UnknownStackError) Unwrap() error { return ErrUnknownStack }

func (e *ResolutionError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("resolution failed: %s", strings.Join(msgs, "; "))
}

// Unwrap exposes the per-agent failures to errors.Is and errors.As.
func (e *ResolutionError) Unwrap() []error { return e.Errs }
