// SPDX-License-Identifier: MPL-2.0

package version

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"
)

// stateHeader versions the canonical serialization layout. Any change to the
// emit format below must bump this header so two layouts can never produce
// the same bytes for different content.
const stateHeader = "skillforge/state/v1"

// bundleNamespace scopes UUIDv5 bundle identities to skillforge state.
var bundleNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://skillforge.dev/state"))

type (
	// State is the semantic snapshot version decisions are made against:
	// every agent's identity-relevant fields plus its final activation
	// entries. Presentation concerns such as template text never enter the
	// state, so a pure rendering change never bumps the bundle version.
	State struct {
		Name        string
		Description string
		Agents      []AgentState
	}

	// AgentState is one agent's contribution to the canonical state.
	AgentState struct {
		Name        types.AgentName
		Description string
		// Tools keep declaration order: reordering an agent's tools changes
		// its semantic surface.
		Tools   []string
		Entries []EntryState
	}

	// EntryState is one activation entry in canonical form.
	EntryState struct {
		Skill types.SkillID
		Mode  skillset.ActivationMode
	}
)

// Canonical serializes the state into its canonical byte form: the header
// line, bundle name and description, then agents sorted by name, each
// emitting description, tools in declaration order, and activation entries
// sorted by skill ID as "agent:skill:mode" tuples. No map is iterated
// anywhere on this path. Free-text fields are quoted so embedded newlines
// cannot forge field boundaries.
func (s *State) Canonical() []byte {
	var sb strings.Builder

	sb.WriteString(stateHeader)
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "name=%q\n", s.Name)
	fmt.Fprintf(&sb, "description=%q\n", s.Description)

	agents := slices.Clone(s.Agents)
	slices.SortFunc(agents, func(a, b AgentState) int {
		return strings.Compare(string(a.Name), string(b.Name))
	})

	for _, ag := range agents {
		fmt.Fprintf(&sb, "agent=%s\n", ag.Name)
		fmt.Fprintf(&sb, "agent.description=%q\n", ag.Description)
		for _, tool := range ag.Tools {
			fmt.Fprintf(&sb, "agent.tool=%q\n", tool)
		}

		entries := slices.Clone(ag.Entries)
		slices.SortFunc(entries, func(a, b EntryState) int {
			return strings.Compare(string(a.Skill), string(b.Skill))
		})
		for _, e := range entries {
			fmt.Fprintf(&sb, "%s:%s:%s\n", ag.Name, e.Skill, e.Mode)
		}
	}

	return []byte(sb.String())
}

// Hash returns the canonical content hash in "sha256:<hex>" form.
func (s *State) Hash() string {
	sum := sha256.Sum256(s.Canonical())
	return "sha256:" + hex.EncodeToString(sum[:])
}

// BundleID derives the stable UUIDv5 content identity over the same
// canonical bytes the hash covers. Downstream tooling can key caches and
// registries on it without parsing version records.
func (s *State) BundleID() uuid.UUID {
	return uuid.NewSHA1(bundleNamespace, s.Canonical())
}
