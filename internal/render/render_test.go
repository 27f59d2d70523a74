// SPDX-License-Identifier: MPL-2.0

package render

import (
	"strings"
	"testing"

	"github.com/skillforge/skillforge/internal/writer"
)

func testView() writer.AgentView {
	return writer.AgentView{
		Name:        "web",
		Description: "Builds web UI code",
		Tools:       []string{"editor", "browser"},
		Version:     "2.0.0",
		Preloaded: []writer.SkillView{
			{ID: "web-framework-react", Name: "React", Instructions: "Use function components."},
		},
		OnDemand: []writer.SkillView{
			{ID: "web-testing-vitest", Name: "Vitest", Hint: "Unit testing"},
		},
	}
}

func TestMarkdownRendersFullView(t *testing.T) {
	t.Parallel()

	text, err := Markdown()(testView())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.HasPrefix(text, "# web\n") {
		t.Errorf("output does not start with agent heading:\n%s", text)
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("output missing trailing newline")
	}

	for _, want := range []string{
		"Builds web UI code",
		"Bundle version: 2.0.0",
		"Tools: editor, browser",
		"## Core skills",
		"### React (web-framework-react)",
		"Use function components.",
		"## On-demand skills",
		"- **web-testing-vitest** (Vitest): Unit testing",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	t.Parallel()

	view := writer.AgentView{
		Name:        "docs",
		Description: "Writes documentation",
		Version:     "1.0.0",
	}

	text, err := Markdown()(view)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	for _, absent := range []string{"Tools:", "## Core skills", "## On-demand skills"} {
		if strings.Contains(text, absent) {
			t.Errorf("output contains %q for empty view:\n%s", absent, text)
		}
	}
}

func TestMarkdownPreloadedFallsBackToHint(t *testing.T) {
	t.Parallel()

	view := writer.AgentView{
		Name:        "web",
		Description: "Builds web UI code",
		Version:     "1.0.0",
		Preloaded: []writer.SkillView{
			{ID: "web-tooling-bundler", Name: "Bundler", Hint: "Bundles assets"},
		},
	}

	text, err := Markdown()(view)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(text, "### Bundler (web-tooling-bundler)") {
		t.Errorf("missing preloaded heading:\n%s", text)
	}
	if !strings.Contains(text, "Bundles assets") {
		t.Errorf("missing hint fallback:\n%s", text)
	}
}

func TestMarkdownOnDemandWithoutHint(t *testing.T) {
	t.Parallel()

	view := writer.AgentView{
		Name:        "web",
		Description: "Builds web UI code",
		Version:     "1.0.0",
		OnDemand: []writer.SkillView{
			{ID: "web-tooling-minifier", Name: "Minifier"},
		},
	}

	text, err := Markdown()(view)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	if !strings.Contains(text, "- **web-tooling-minifier** (Minifier)\n") {
		t.Errorf("unexpected on-demand line:\n%s", text)
	}
}

func TestMarkdownIsDeterministic(t *testing.T) {
	t.Parallel()

	render := Markdown()
	first, err := render(testView())
	if err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	second, err := render(testView())
	if err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	if first != second {
		t.Error("renders of identical views differ")
	}
}
