// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skillforge/skillforge/pkg/skillset"
)

func TestInitScaffoldsProject(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	stdout, _, err := execute(t, newInitCommand(), dir)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	target := filepath.Join(dir, skillset.DefaultFileName)
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("scaffold skillset missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "docs", "react.md")); err != nil {
		t.Fatalf("scaffold instruction doc missing: %v", err)
	}

	for _, want := range []string{
		"Created",
		"skillset.cue",
		"react.md",
		"Next steps:",
		"skillforge validate",
		"skillforge build",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("output missing %q:\n%s", want, stdout)
		}
	}

	// The scaffold must be a valid document, not just plausible-looking text.
	doc, err := skillset.Parse(target)
	if err != nil {
		t.Fatalf("scaffold does not parse: %v", err)
	}
	if doc.Name != "starter" {
		t.Errorf("scaffold name = %q, want %q", doc.Name, "starter")
	}
	if len(doc.Skills) == 0 || len(doc.Agents) == 0 {
		t.Errorf("scaffold should declare example skills and agents, got %d/%d", len(doc.Skills), len(doc.Agents))
	}
}

// TestInitScaffoldCompiles runs a real build against a fresh scaffold. The
// init command promises a project that compiles as-is, so this is the
// contract test for that promise.
func TestInitScaffoldCompiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if _, _, err := execute(t, newInitCommand(), dir); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	app := newTestApp(t, Dependencies{})
	stdout, stderr, err := execute(t, newBuildCommand(app),
		"--skillset", filepath.Join(dir, skillset.DefaultFileName),
		"--out", filepath.Join(dir, "dist"),
	)
	if err != nil {
		t.Fatalf("build of scaffold failed: %v\nstderr:\n%s", err, stderr)
	}

	for _, want := range []string{"web", "docs", "1.0.0"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("build output missing %q:\n%s", want, stdout)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "dist", "agents", "web.md")); err != nil {
		t.Errorf("scaffold build wrote no web agent file: %v", err)
	}
}

func TestInitRefusesExistingSkillset(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, skillset.DefaultFileName)
	original := "name: \"keep-me\"\n"
	if err := os.WriteFile(target, []byte(original), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := execute(t, newInitCommand(), dir)
	if err == nil {
		t.Fatal("expected error for existing skillset.cue, got nil")
	}
	if !strings.Contains(err.Error(), "already exists. Use --force to overwrite") {
		t.Errorf("unexpected error message: %v", err)
	}

	// The refusal must leave the existing file untouched.
	got, readErr := os.ReadFile(target)
	if readErr != nil {
		t.Fatal(readErr)
	}
	if string(got) != original {
		t.Errorf("existing file was modified:\n%s", got)
	}
}

func TestInitForceOverwrites(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	target := filepath.Join(dir, skillset.DefaultFileName)
	if err := os.WriteFile(target, []byte("name: \"stale\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := execute(t, newInitCommand(), "--force", dir); err != nil {
		t.Fatalf("init --force failed: %v", err)
	}

	doc, err := skillset.Parse(target)
	if err != nil {
		t.Fatalf("overwritten scaffold does not parse: %v", err)
	}
	if doc.Name != "starter" {
		t.Errorf("overwrite kept stale content, name = %q", doc.Name)
	}
}
