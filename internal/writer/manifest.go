// SPDX-License-Identifier: MPL-2.0

package writer

import (
	_ "embed"
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/skillforge/skillforge/pkg/cueutil"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"
)

//go:embed manifest_schema.cue
var manifestSchema []byte

type (
	// Manifest is the machine-written bundle description: version, where the
	// agent files live, and each agent's activation entries. Downstream
	// tooling reads it instead of parsing agent markdown.
	Manifest struct {
		Name        string          `json:"name,omitempty"`
		Description string          `json:"description,omitempty"`
		Version     types.SemVer    `json:"version"`
		AgentsDir   string          `json:"agents_dir"`
		Agents      []ManifestAgent `json:"agents"`
	}

	// ManifestAgent describes one produced agent artifact.
	ManifestAgent struct {
		Name        types.AgentName `json:"name"`
		Description string          `json:"description"`
		Version     types.SemVer    `json:"version"`
		Path        string          `json:"path"`
		Skills      []ManifestSkill `json:"skills"`
	}

	// ManifestSkill is one activation entry in the manifest.
	ManifestSkill struct {
		ID   types.SkillID           `json:"id"`
		Mode skillset.ActivationMode `json:"mode"`
	}
)

// buildManifest derives the manifest from the bundle. Manifest paths always
// use forward slashes regardless of platform.
func buildManifest(bundle *Bundle) *Manifest {
	m := &Manifest{
		Name:        bundle.Name,
		Description: bundle.Description,
		Version:     bundle.Version,
		AgentsDir:   AgentsDirName,
	}

	for _, view := range bundle.Agents {
		agent := ManifestAgent{
			Name:        view.Name,
			Description: view.Description,
			Version:     bundle.Version,
			Path:        path.Join(AgentsDirName, string(view.Name)+".md"),
		}
		for _, sk := range view.Preloaded {
			agent.Skills = append(agent.Skills, ManifestSkill{ID: sk.ID, Mode: skillset.ModePreloaded})
		}
		for _, sk := range view.OnDemand {
			agent.Skills = append(agent.Skills, ManifestSkill{ID: sk.ID, Mode: skillset.ModeOnDemand})
		}
		m.Agents = append(m.Agents, agent)
	}

	return m
}

// ParseManifest reads and validates a manifest.cue produced by Write.
func ParseManifest(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return cueutil.Decode[Manifest](manifestSchema, data, "#Manifest", cueutil.WithFilename(filePath))
}

// toCUE serializes the manifest to CUE format.
func (m *Manifest) toCUE() string {
	var sb strings.Builder

	sb.WriteString("// manifest.cue - Auto-generated bundle manifest\n")
	sb.WriteString("// DO NOT EDIT MANUALLY\n\n")

	if m.Name != "" {
		sb.WriteString(fmt.Sprintf("name:        %q\n", m.Name))
	}
	if m.Description != "" {
		sb.WriteString(fmt.Sprintf("description: %q\n", m.Description))
	}
	sb.WriteString(fmt.Sprintf("version:     %q\n", string(m.Version)))
	sb.WriteString(fmt.Sprintf("agents_dir:  %q\n\n", m.AgentsDir))

	if len(m.Agents) == 0 {
		sb.WriteString("agents: []\n")
		return sb.String()
	}

	sb.WriteString("agents: [")
	for i, ag := range m.Agents {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("{\n")
		sb.WriteString(fmt.Sprintf("\tname:        %q\n", string(ag.Name)))
		sb.WriteString(fmt.Sprintf("\tdescription: %q\n", ag.Description))
		sb.WriteString(fmt.Sprintf("\tversion:     %q\n", string(ag.Version)))
		sb.WriteString(fmt.Sprintf("\tpath:        %q\n", ag.Path))
		if len(ag.Skills) == 0 {
			sb.WriteString("\tskills: []\n")
		} else {
			sb.WriteString("\tskills: [\n")
			for _, sk := range ag.Skills {
				sb.WriteString(fmt.Sprintf("\t\t{id: %q, mode: %q},\n", string(sk.ID), string(sk.Mode)))
			}
			sb.WriteString("\t]\n")
		}
		sb.WriteString("}")
	}
	sb.WriteString("]\n")

	return sb.String()
}
