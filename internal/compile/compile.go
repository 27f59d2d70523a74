// SPDX-License-Identifier: MPL-2.0

// Package compile orchestrates the full pipeline: load and validate the
// skillset document, resolve every target agent's selection, derive the
// bundle version from the canonical content state, and write the agent
// artifacts. The version record is saved last, only after every artifact
// write succeeded, so a crashed compile never records a version for
// output it did not produce.
package compile

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/skillforge/skillforge/internal/assemble"
	"github.com/skillforge/skillforge/internal/catalog"
	"github.com/skillforge/skillforge/internal/render"
	"github.com/skillforge/skillforge/internal/resolve"
	"github.com/skillforge/skillforge/internal/version"
	"github.com/skillforge/skillforge/internal/writer"
	"github.com/skillforge/skillforge/pkg/skilldoc"
	"github.com/skillforge/skillforge/pkg/skillset"
	"github.com/skillforge/skillforge/pkg/types"
)

type (
	// Options select and shape a single compilation.
	Options struct {
		// SkillsetPath locates the skillset document.
		SkillsetPath string
		// OutputDir receives agents/, the manifest and the version record.
		OutputDir string
		// Stack names an optional stack whose per-agent selections are
		// appended after each agent's declared defaults.
		Stack string
		// Agents narrows compilation to the named agents. Empty compiles
		// every declared agent.
		Agents []string
		// ExtraSkills are appended to every target agent's selection.
		ExtraSkills []types.SkillID
		// PreloadSkills are appended like ExtraSkills and additionally
		// hinted to preloaded activation.
		PreloadSkills []types.SkillID
		// DryRun resolves and versions but writes nothing.
		DryRun bool
		// ResetVersion discards a corrupt version record instead of
		// failing the compile.
		ResetVersion bool
	}

	// Pipeline is a reusable compiler. The catalog cache persists across
	// runs, so repeated compiles of the same document parse it once.
	Pipeline struct {
		catalogs *catalog.Cache
		render   writer.RenderFunc
	}

	// AgentOutcome reports one agent's resolution.
	AgentOutcome struct {
		Agent      types.AgentName
		Entries    []assemble.ActivationEntry
		Advisories []resolve.Advisory
	}

	// Outcome reports a completed compilation.
	Outcome struct {
		Agents []AgentOutcome
		// Record is the version record for this content state. On dry
		// runs it is computed but never saved.
		Record *version.Record
		// PriorVersion is the previously recorded version. Empty on the
		// first compile.
		PriorVersion types.SemVer
		// Changed is false when the content hash matched the prior
		// record and the version was carried over unchanged.
		Changed bool
		// DryRun mirrors the requested mode.
		DryRun bool
		// Written describes the produced files. Nil on dry runs.
		Written *writer.Result
	}
)

// New builds a pipeline. A nil cache gets a private one; a nil render
// function falls back to the standard markdown renderer.
func New(catalogs *catalog.Cache, renderFn writer.RenderFunc) *Pipeline {
	if catalogs == nil {
		catalogs = catalog.NewCache()
	}
	if renderFn == nil {
		renderFn = render.Markdown()
	}
	return &Pipeline{catalogs: catalogs, render: renderFn}
}

// Run executes one compilation. Stages run in a fixed order: load,
// resolve, version, render, write, record.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*Outcome, error) {
	started := time.Now()

	cat, err := p.catalogs.Load(ctx, opts.SkillsetPath)
	if err != nil {
		return nil, err
	}

	requests, hints, err := buildRequests(cat.Document(), opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved := make([]*assemble.ResolvedAgent, 0, len(requests))
	outcomes := make([]AgentOutcome, 0, len(requests))
	var failures []error
	for _, req := range requests {
		res, err := resolve.Resolve(cat, req)
		if err != nil {
			failures = append(failures, err)
			continue
		}
		ag, err := assemble.Assemble(res, hints[req.Agent])
		if err != nil {
			failures = append(failures, fmt.Errorf("agent %q: %w", req.Agent, err))
			continue
		}
		resolved = append(resolved, ag)
		outcomes = append(outcomes, AgentOutcome{
			Agent:      res.Agent,
			Entries:    ag.Entries,
			Advisories: res.Advisories,
		})
	}
	if len(failures) > 0 {
		return nil, &ResolutionError{Errs: failures}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	state := buildState(cat.Document(), resolved)

	prior, err := version.LoadRecord(opts.OutputDir)
	if err != nil {
		var corrupt *version.CorruptRecordError
		if opts.ResetVersion && errors.As(err, &corrupt) {
			slog.Warn("discarding corrupt version record", "path", corrupt.Path, "error", corrupt.Err)
			prior = nil
		} else {
			return nil, err
		}
	}
	rec, err := version.Compute(prior, state)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		Agents:  outcomes,
		Record:  rec,
		Changed: prior == nil || prior.ContentHash != rec.ContentHash,
		DryRun:  opts.DryRun,
	}
	if prior != nil {
		outcome.PriorVersion = prior.Version
	}
	if opts.DryRun {
		return outcome, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle, err := buildBundle(cat.Document(), resolved, rec.Version)
	if err != nil {
		return nil, err
	}
	written, err := writer.Write(opts.OutputDir, bundle, p.render)
	if err != nil {
		return nil, err
	}
	if err := version.SaveRecord(opts.OutputDir, rec); err != nil {
		return nil, err
	}
	outcome.Written = written

	slog.Debug("compile finished",
		"agents", len(outcomes),
		"version", rec.Version,
		"changed", outcome.Changed,
		"elapsed", time.Since(started))
	return outcome, nil
}

// buildRequests merges each target agent's declared selection with the
// optional stack selection and the command-line additions, in that
// order. Duplicate IDs collapse to the first occurrence during
// resolution; activation hints are last-wins.
func buildRequests(doc *skillset.Document, opts Options) ([]resolve.Request, map[types.AgentName]assemble.Hints, error) {
	var stack *skillset.Stack
	if opts.Stack != "" {
		stack = doc.GetStack(opts.Stack)
		if stack == nil {
			return nil, nil, &UnknownStackError{Stack: opts.Stack}
		}
	}

	targets, err := targetAgents(doc, opts.Agents)
	if err != nil {
		return nil, nil, err
	}

	requests := make([]resolve.Request, 0, len(targets))
	hints := make(map[types.AgentName]assemble.Hints, len(targets))
	for _, ag := range targets {
		var skills []types.SkillID
		hint := assemble.Hints{}
		apply := func(sels []skillset.Selection) {
			for _, sel := range sels {
				skills = append(skills, sel.ID)
				if sel.Preload == nil {
					continue
				}
				if *sel.Preload {
					hint[sel.ID] = skillset.ModePreloaded
				} else {
					hint[sel.ID] = skillset.ModeOnDemand
				}
			}
		}
		apply(ag.Skills)
		if stack != nil {
			apply(stack.Agents[string(ag.Name)])
		}
		skills = append(skills, opts.ExtraSkills...)
		for _, id := range opts.PreloadSkills {
			skills = append(skills, id)
			hint[id] = skillset.ModePreloaded
		}
		requests = append(requests, resolve.Request{Agent: ag.Name, Skills: skills})
		hints[ag.Name] = hint
	}
	return requests, hints, nil
}

// targetAgents returns the agents to compile in document order. A
// non-empty filter must name declared agents only; every unknown name
// is reported.
func targetAgents(doc *skillset.Document, filter []string) ([]*skillset.Agent, error) {
	if len(filter) == 0 {
		agents := make([]*skillset.Agent, 0, len(doc.Agents))
		for i := range doc.Agents {
			agents = append(agents, &doc.Agents[i])
		}
		return agents, nil
	}

	want := make(map[types.AgentName]bool, len(filter))
	var errs []error
	for _, name := range filter {
		ag := doc.GetAgent(types.AgentName(name))
		if ag == nil {
			errs = append(errs, &UnknownAgentError{Agent: name})
			continue
		}
		want[ag.Name] = true
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	agents := make([]*skillset.Agent, 0, len(want))
	for i := range doc.Agents {
		if want[doc.Agents[i].Name] {
			agents = append(agents, &doc.Agents[i])
		}
	}
	return agents, nil
}

// buildState projects the resolved agents onto the canonical version
// state. Instruction bodies never enter the state: the version tracks
// the selection semantics, not the prose shipped alongside it.
func buildState(doc *skillset.Document, resolved []*assemble.ResolvedAgent) *version.State {
	state := &version.State{Name: doc.Name, Description: doc.Description}
	for _, ag := range resolved {
		decl := doc.GetAgent(ag.Name)
		agState := version.AgentState{
			Name:        ag.Name,
			Description: decl.Description,
			Tools:       decl.Tools,
		}
		for _, entry := range ag.Entries {
			agState.Entries = append(agState.Entries, version.EntryState{
				Skill: entry.ID,
				Mode:  entry.Mode,
			})
		}
		state.Agents = append(state.Agents, agState)
	}
	return state
}

// buildBundle prepares the writer's view of every agent. Preloaded
// skills carry the full instruction body; on-demand skills carry the
// hint only.
func buildBundle(doc *skillset.Document, resolved []*assemble.ResolvedAgent, ver types.SemVer) (*writer.Bundle, error) {
	bundle := &writer.Bundle{Name: doc.Name, Description: doc.Description, Version: ver}
	for _, ag := range resolved {
		decl := doc.GetAgent(ag.Name)
		view := writer.AgentView{
			Name:        ag.Name,
			Description: decl.Description,
			Tools:       decl.Tools,
			Version:     ver,
		}
		for _, entry := range ag.Preloaded() {
			sv, err := skillView(doc, entry.ID, true)
			if err != nil {
				return nil, err
			}
			view.Preloaded = append(view.Preloaded, sv)
		}
		for _, entry := range ag.OnDemand() {
			sv, err := skillView(doc, entry.ID, false)
			if err != nil {
				return nil, err
			}
			view.OnDemand = append(view.OnDemand, sv)
		}
		bundle.Agents = append(bundle.Agents, view)
	}
	return bundle, nil
}

// skillView projects one catalog skill for rendering, loading the
// instruction document only when the skill is preloaded.
func skillView(doc *skillset.Document, id types.SkillID, preloaded bool) (writer.SkillView, error) {
	sk := doc.GetSkill(id)
	view := writer.SkillView{ID: id, Name: sk.Name, Hint: sk.Hint}
	if !preloaded {
		return view, nil
	}
	body, err := loadInstructions(doc, sk)
	if err != nil {
		return writer.SkillView{}, err
	}
	view.Instructions = body
	return view, nil
}

// loadInstructions reads the skill's instruction document when one is
// declared. A declared but unreadable document fails the compile.
func loadInstructions(doc *skillset.Document, sk *skillset.Skill) (string, error) {
	path := doc.InstructionsPath(sk)
	if path == "" {
		return "", nil
	}
	d, err := skilldoc.Load(path)
	if err != nil {
		return "", fmt.Errorf("skill %q: %w", sk.ID, err)
	}
	return d.Body, nil
}
