// SPDX-License-Identifier: MPL-2.0

// Package writer materializes a compiled bundle on disk: one markdown file
// per agent under agents/, plus a manifest.cue describing the bundle. The
// writer renders every agent before writing a single byte, so a render
// failure leaves the output directory and the prior version record
// untouched.
package writer

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/skillforge/skillforge/pkg/types"
)

const (
	// AgentsDirName is the subdirectory agent artifacts are written to.
	AgentsDirName = "agents"
	// ManifestFileName is the bundle manifest written next to agents/.
	ManifestFileName = "manifest.cue"
)

// ErrRender is the sentinel error wrapped by RenderError.
var ErrRender = errors.New("render failed")

type (
	// SkillView is one skill prepared for rendering. Instructions carries
	// the full instruction document body for preloaded skills; on-demand
	// skills usually render ID and hint only.
	SkillView struct {
		ID           types.SkillID
		Name         string
		Hint         string
		Instructions string
	}

	// AgentView is everything a renderer needs for one agent artifact.
	AgentView struct {
		Name        types.AgentName
		Description string
		Tools       []string
		Version     types.SemVer
		Preloaded   []SkillView
		OnDemand    []SkillView
	}

	// Bundle is the full write input: bundle metadata plus all agent views
	// in output order.
	Bundle struct {
		Name        string
		Description string
		Version     types.SemVer
		Agents      []AgentView
	}

	// RenderFunc renders one agent view to its artifact text. It must be
	// pure: no filesystem access, no shared mutable state.
	RenderFunc func(AgentView) (string, error)

	// Result lists what Write produced. AgentFiles are relative to Dir.
	Result struct {
		Dir          string
		AgentFiles   []string
		ManifestPath string
	}

	// RenderError reports a failed render; when it surfaces, nothing was
	// written.
	RenderError struct {
		Agent types.AgentName
		Err   error
	}

	renderedAgent struct {
		name types.AgentName
		text string
	}
)

// Error implements the error interface for RenderError.
func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering agent %q: %v", e.Agent, e.Err)
}

// Unwrap returns ErrRender for errors.Is() compatibility.
func (e *RenderError) Unwrap() error { return ErrRender }

// Write renders all agents and writes the bundle artifacts under dir:
// agents/<name>.md per agent, then manifest.cue. Rendering completes fully
// before the first write, and every file is written atomically, so a failed
// compile never leaves a half-updated bundle.
func Write(dir string, bundle *Bundle, render RenderFunc) (*Result, error) {
	if render == nil {
		return nil, errors.New("writer: nil render function")
	}

	rendered := make([]renderedAgent, 0, len(bundle.Agents))
	for _, view := range bundle.Agents {
		text, err := render(view)
		if err != nil {
			return nil, &RenderError{Agent: view.Name, Err: err}
		}
		rendered = append(rendered, renderedAgent{name: view.Name, text: text})
	}

	if err := os.MkdirAll(filepath.Join(dir, AgentsDirName), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create agents directory: %w", err)
	}

	result := &Result{Dir: dir}
	for _, ra := range rendered {
		rel := path.Join(AgentsDirName, string(ra.name)+".md")
		if err := writeFileAtomic(filepath.Join(dir, filepath.FromSlash(rel)), []byte(ra.text)); err != nil {
			return nil, err
		}
		result.AgentFiles = append(result.AgentFiles, rel)
	}

	manifest := buildManifest(bundle)
	manifestPath := filepath.Join(dir, ManifestFileName)
	if err := writeFileAtomic(manifestPath, []byte(manifest.toCUE())); err != nil {
		return nil, err
	}
	result.ManifestPath = manifestPath

	return result, nil
}

// writeFileAtomic writes data via a temp file in the target directory and
// renames it into place.
func writeFileAtomic(filePath string, data []byte) error {
	tmpPath := filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(filePath), err)
	}
	if err := os.Rename(tmpPath, filePath); err != nil {
		_ = os.Remove(tmpPath) // Best-effort cleanup of temp file
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(filePath), err)
	}
	return nil
}
