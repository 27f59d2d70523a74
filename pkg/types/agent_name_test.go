// SPDX-License-Identifier: MPL-2.0

package types

import (
	"errors"
	"testing"
)

func TestAgentName_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		agent AgentName
		want  bool
	}{
		{"simple", AgentName("web"), true},
		{"with dash", AgentName("web-reviewer"), true},
		{"with underscore", AgentName("web_reviewer"), true},
		{"with digits", AgentName("web2"), true},
		{"empty is invalid", AgentName(""), false},
		{"starts with digit", AgentName("2web"), false},
		{"starts with dash", AgentName("-web"), false},
		{"uppercase", AgentName("Web"), false},
		{"whitespace", AgentName("web reviewer"), false},
		{"path separator", AgentName("web/reviewer"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.agent.IsValid()
			if isValid != tt.want {
				t.Errorf("AgentName(%q).IsValid() = %v, want %v", tt.agent, isValid, tt.want)
			}
			if tt.want {
				if len(errs) > 0 {
					t.Errorf("AgentName(%q).IsValid() returned unexpected errors: %v", tt.agent, errs)
				}
				return
			}
			if len(errs) == 0 {
				t.Fatalf("AgentName(%q).IsValid() returned no errors, want error", tt.agent)
			}
			if !errors.Is(errs[0], ErrInvalidAgentName) {
				t.Errorf("error should wrap ErrInvalidAgentName, got: %v", errs[0])
			}
			var nameErr *InvalidAgentNameError
			if !errors.As(errs[0], &nameErr) {
				t.Errorf("error should be *InvalidAgentNameError, got: %T", errs[0])
			}
		})
	}
}
