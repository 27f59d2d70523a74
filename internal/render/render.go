// SPDX-License-Identifier: MPL-2.0

// Package render provides the default agent artifact renderer: markdown
// produced by a text/template over an embedded template. Preloaded skills
// render with their full instruction bodies inline; on-demand skills render
// as an ID-plus-hint list the agent can activate from.
package render

import (
	"bytes"
	_ "embed"
	"strings"
	"text/template"

	"github.com/skillforge/skillforge/internal/writer"
)

//go:embed agent.md.tmpl
var agentTemplate string

// Markdown returns the default RenderFunc. The template is parsed once; the
// returned function is pure and safe for concurrent use.
func Markdown() writer.RenderFunc {
	tmpl := template.Must(template.New("agent").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(agentTemplate))

	return func(view writer.AgentView) (string, error) {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, view); err != nil {
			return "", err
		}
		text := buf.String()
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		return text, nil
	}
}
