// SPDX-License-Identifier: MPL-2.0

package skillset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillforge/skillforge/pkg/types"
)

const validDocument = `
name: "demo"

categories: [
	{id: "framework", exclusive: true, required: true},
	{id: "testing"},
]

skills: [
	{
		id:       "web-framework-react"
		name:     "React"
		category: "framework"
		hint:     "Component-based UI work"
	},
	{
		id:             "web-framework-vue"
		name:           "Vue"
		category:       "framework"
		conflicts_with: ["web-framework-react"]
	},
	{
		id:         "web-testing-vitest"
		name:       "Vitest"
		category:   "testing"
		recommends: ["web-framework-react"]
	},
]

stacks: [
	{
		name: "frontend"
		agents: web: [{id: "web-framework-vue"}, {id: "web-testing-vitest"}]
	},
]

agents: [
	{
		name:        "web"
		description: "Builds and reviews web UI code"
		tools: ["editor", "browser"]
		skills: [{id: "web-framework-react", preload: true}]
	},
]
`

func TestParseBytes(t *testing.T) {
	t.Parallel()

	doc, err := ParseBytes([]byte(validDocument), "skillset.cue")
	if err != nil {
		t.Fatalf("ParseBytes failed: %v", err)
	}

	if doc.Name != "demo" {
		t.Errorf("expected name=%q, got %q", "demo", doc.Name)
	}
	if len(doc.Skills) != 3 {
		t.Fatalf("expected 3 skills, got %d", len(doc.Skills))
	}
	if len(doc.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(doc.Categories))
	}
	if len(doc.Agents) != 1 {
		t.Fatalf("expected 1 agent, got %d", len(doc.Agents))
	}

	react := doc.GetSkill("web-framework-react")
	if react == nil {
		t.Fatal("GetSkill(web-framework-react) returned nil")
	}
	if react.Category != "framework" {
		t.Errorf("expected category=framework, got %q", react.Category)
	}

	vue := doc.GetSkill("web-framework-vue")
	if vue == nil || len(vue.ConflictsWith) != 1 || vue.ConflictsWith[0] != "web-framework-react" {
		t.Errorf("vue conflicts_with not decoded, got %+v", vue)
	}

	framework := doc.GetCategory("framework")
	if framework == nil || !framework.Exclusive || !framework.Required {
		t.Errorf("framework category flags not decoded, got %+v", framework)
	}
	testCat := doc.GetCategory("testing")
	if testCat == nil || testCat.Exclusive || testCat.Required {
		t.Errorf("testing category should default both flags to false, got %+v", testCat)
	}

	web := doc.GetAgent("web")
	if web == nil {
		t.Fatal("GetAgent(web) returned nil")
	}
	if len(web.Skills) != 1 || web.Skills[0].Preload == nil || !*web.Skills[0].Preload {
		t.Errorf("agent selection preload hint not decoded, got %+v", web.Skills)
	}

	frontend := doc.GetStack("frontend")
	if frontend == nil {
		t.Fatal("GetStack(frontend) returned nil")
	}
	if got := frontend.Agents["web"]; len(got) != 2 || got[0].ID != "web-framework-vue" {
		t.Errorf("stack selections not decoded, got %+v", got)
	}
}

func TestParseBytesSchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		document string
		wantIn   string
	}{
		{
			name: "bad skill id pattern",
			document: `
categories: [{id: "framework"}]
skills: [{id: "React", name: "React", category: "framework"}]
agents: [{name: "web", description: "Web work"}]
`,
			wantIn: "id",
		},
		{
			name: "missing agent description",
			document: `
categories: []
skills: []
agents: [{name: "web"}]
`,
			wantIn: "description",
		},
		{
			name: "unknown field rejected",
			document: `
categories: []
skills: []
agents: [{name: "web", description: "Web work"}]
flavor: "orange"
`,
			wantIn: "flavor",
		},
		{
			name: "empty agents list rejected",
			document: `
categories: []
skills: []
agents: []
`,
			wantIn: "agents",
		},
		{
			name: "bad preload type",
			document: `
categories: [{id: "framework"}]
skills: [{id: "web-framework-react", name: "React", category: "framework"}]
agents: [{name: "web", description: "Web work", skills: [{id: "web-framework-react", preload: "yes"}]}]
`,
			wantIn: "preload",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseBytes([]byte(tt.document), "skillset.cue")
			if err == nil {
				t.Fatal("ParseBytes succeeded, want schema violation")
			}
			if !strings.Contains(err.Error(), tt.wantIn) {
				t.Errorf("error should mention %q, got: %v", tt.wantIn, err)
			}
		})
	}
}

func TestParseFromDisk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "skillset.cue")
	if err := os.WriteFile(path, []byte(validDocument), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.FilePath != path {
		t.Errorf("FilePath = %q, want %q", doc.FilePath, path)
	}
}

func TestParseMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Parse(filepath.Join(t.TempDir(), "absent.cue"))
	if err == nil {
		t.Fatal("Parse of missing file should fail")
	}
	if !strings.Contains(err.Error(), "failed to read skillset") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestInstructionsPath(t *testing.T) {
	t.Parallel()

	doc := &Document{FilePath: filepath.Join("workspace", "skillset.cue")}
	sk := &Skill{ID: types.SkillID("web-framework-react"), Instructions: "docs/react.md"}

	got := doc.InstructionsPath(sk)
	want := filepath.Join("workspace", "docs", "react.md")
	if got != want {
		t.Errorf("InstructionsPath = %q, want %q", got, want)
	}

	if doc.InstructionsPath(&Skill{}) != "" {
		t.Error("InstructionsPath without instructions should be empty")
	}
}
