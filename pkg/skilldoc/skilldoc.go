// SPDX-License-Identifier: MPL-2.0

// Package skilldoc reads skill instruction documents: markdown files whose
// body is embedded into rendered agent artifacts. Documents may open with a
// frontmatter block carrying display metadata, either YAML between "---"
// lines or TOML between "+++" lines. Frontmatter is optional; a plain
// markdown file is a valid instruction document with empty metadata.
package skilldoc

import (
	"bytes"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

type (
	// Meta is the frontmatter metadata of an instruction document. All
	// fields are optional display metadata; the engine never branches on
	// them.
	Meta struct {
		// Title overrides the skill name in catalog output when set.
		Title string `yaml:"title,omitempty" toml:"title,omitempty"`
		// Summary is a one-paragraph description shown by catalog show.
		Summary string `yaml:"summary,omitempty" toml:"summary,omitempty"`
		// Tags are free-form labels shown by catalog show.
		Tags []string `yaml:"tags,omitempty" toml:"tags,omitempty"`
	}

	// Doc is a parsed instruction document.
	Doc struct {
		Meta Meta
		// Body is the markdown instruction text without the frontmatter
		// block.
		Body string
		// FilePath is where the document was loaded from ("" for in-memory
		// parses).
		FilePath string
	}
)

var (
	yamlDelim = []byte("---\n")
	tomlDelim = []byte("+++\n")
)

// Load reads and parses the instruction document at path.
func Load(path string) (*Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instruction document at %s: %w", path, err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.FilePath = path

	return doc, nil
}

// Parse splits data into frontmatter metadata and markdown body. The
// frontmatter format is detected from the opening delimiter: "---" starts a
// YAML block, "+++" a TOML block. Without either, the whole input is body.
func Parse(data []byte) (*Doc, error) {
	switch {
	case bytes.HasPrefix(data, yamlDelim):
		fm, body, err := splitBlock(data, yamlDelim)
		if err != nil {
			return nil, err
		}
		var meta Meta
		if err := yaml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("invalid YAML frontmatter: %w", err)
		}
		return &Doc{Meta: meta, Body: string(body)}, nil

	case bytes.HasPrefix(data, tomlDelim):
		fm, body, err := splitBlock(data, tomlDelim)
		if err != nil {
			return nil, err
		}
		var meta Meta
		if err := toml.Unmarshal(fm, &meta); err != nil {
			return nil, fmt.Errorf("invalid TOML frontmatter: %w", err)
		}
		return &Doc{Meta: meta, Body: string(body)}, nil

	default:
		return &Doc{Body: string(data)}, nil
	}
}

// splitBlock returns the frontmatter bytes between the opening delimiter and
// the matching closing line, plus the remaining body. The closing delimiter
// must start a line; a frontmatter block left open is an error, not an empty
// document.
func splitBlock(data, delim []byte) (frontmatter, body []byte, err error) {
	rest := data[len(delim):]

	marker := delim[:3] // "---" or "+++" without the newline
	closing := append([]byte("\n"), marker...)

	idx := bytes.Index(rest, closing)
	if idx < 0 {
		return nil, nil, fmt.Errorf("missing closing %s delimiter", marker)
	}

	fm := rest[:idx]
	tail := rest[idx+len(closing):]
	if len(tail) > 0 && tail[0] == '\n' {
		tail = tail[1:]
	}

	return fm, tail, nil
}
