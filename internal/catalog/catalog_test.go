// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"errors"
	"slices"
	"testing"

	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"
)

// validDoc builds an in-memory document covering the main relation kinds.
func validDoc() *skillset.Document {
	return &skillset.Document{
		Name: "demo",
		Categories: []skillset.Category{
			{ID: "framework", Exclusive: true, Required: true},
			{ID: "testing"},
		},
		Skills: []skillset.Skill{
			{
				ID:       "web-framework-react",
				Name:     "React",
				Category: "framework",
				Requires: []types.SkillID{"web-testing-vitest"},
			},
			{
				ID:            "web-framework-vue",
				Name:          "Vue",
				Category:      "framework",
				ConflictsWith: []types.SkillID{"web-framework-react"},
			},
			{
				ID:         "web-testing-vitest",
				Name:       "Vitest",
				Category:   "testing",
				Recommends: []types.SkillID{"web-framework-react"},
			},
		},
		Agents: []skillset.Agent{
			{Name: "web", Description: "Builds web UI code"},
		},
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	cat, err := Build(validDoc())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if _, ok := cat.Skill("web-framework-react"); !ok {
		t.Error("Skill(web-framework-react) not found")
	}
	if _, ok := cat.Skill("web-framework-rails"); ok {
		t.Error("Skill(web-framework-rails) unexpectedly found")
	}

	fw, ok := cat.Category("framework")
	if !ok {
		t.Fatal("Category(framework) not found")
	}
	if !fw.Exclusive || !fw.Required {
		t.Errorf("framework category flags wrong: exclusive=%v required=%v", fw.Exclusive, fw.Required)
	}

	want := []types.SkillID{"web-framework-react", "web-framework-vue"}
	if got := cat.Members("framework"); !slices.Equal(got, want) {
		t.Errorf("Members(framework) = %v, want %v", got, want)
	}
	if got := cat.Members("nonexistent"); got != nil {
		t.Errorf("Members(nonexistent) = %v, want nil", got)
	}
}

func TestBuildConflictIndexIsSymmetric(t *testing.T) {
	t.Parallel()

	cat, err := Build(validDoc())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Declared on vue only, but visible from both directions.
	if !cat.Conflicts("web-framework-vue", "web-framework-react") {
		t.Error("Conflicts(vue, react) = false, want true")
	}
	if !cat.Conflicts("web-framework-react", "web-framework-vue") {
		t.Error("Conflicts(react, vue) = false, want true")
	}
	if cat.Conflicts("web-framework-react", "web-testing-vitest") {
		t.Error("Conflicts(react, vitest) = true, want false")
	}
}

func TestBuildDanglingRelation(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Skills[0].Requires = []types.SkillID{"web-testing-ghost"}

	_, err := Build(doc)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var dangling *DanglingRelationError
	if !errors.As(err, &dangling) {
		t.Fatalf("expected DanglingRelationError, got %v", err)
	}
	if dangling.Skill != "web-framework-react" || dangling.Target != "web-testing-ghost" {
		t.Errorf("unexpected error detail: %+v", dangling)
	}
	if dangling.Kind != skillset.RelationRequires {
		t.Errorf("expected kind=requires, got %s", dangling.Kind)
	}
	if !errors.Is(err, ErrDanglingRelation) {
		t.Error("errors.Is(err, ErrDanglingRelation) = false")
	}
}

func TestBuildSelfRelation(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Skills[1].ConflictsWith = []types.SkillID{"web-framework-vue"}

	_, err := Build(doc)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var self *SelfRelationError
	if !errors.As(err, &self) {
		t.Fatalf("expected SelfRelationError, got %v", err)
	}
	if self.Skill != "web-framework-vue" || self.Kind != skillset.RelationConflictsWith {
		t.Errorf("unexpected error detail: %+v", self)
	}
}

func TestBuildUnknownCategory(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Skills[2].Category = "benchmarks"

	_, err := Build(doc)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var unknown *UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownCategoryError, got %v", err)
	}
	if unknown.Skill != "web-testing-vitest" || unknown.Category != "benchmarks" {
		t.Errorf("unexpected error detail: %+v", unknown)
	}
}

func TestBuildRequiredCategoryWithoutMembers(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Categories = append(doc.Categories, skillset.Category{ID: "linting", Required: true})

	_, err := Build(doc)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var inconsistent *InconsistentCategoryError
	if !errors.As(err, &inconsistent) {
		t.Fatalf("expected InconsistentCategoryError, got %v", err)
	}
	if inconsistent.Category != "linting" {
		t.Errorf("expected category=linting, got %q", inconsistent.Category)
	}
}

func TestBuildReportsAllViolationsTogether(t *testing.T) {
	t.Parallel()

	doc := validDoc()
	doc.Skills[0].Requires = []types.SkillID{"web-testing-ghost"}
	doc.Skills[2].Category = "benchmarks"

	_, err := Build(doc)
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// Both violations must surface from the same run.
	var dangling *DanglingRelationError
	if !errors.As(err, &dangling) {
		t.Errorf("missing DanglingRelationError in %v", err)
	}
	var unknown *UnknownCategoryError
	if !errors.As(err, &unknown) {
		t.Errorf("missing UnknownCategoryError in %v", err)
	}
}
