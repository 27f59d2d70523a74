// SPDX-License-Identifier: MPL-2.0

package skillset

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/skillforge/skillforge/pkg/cueutil"
)

//go:embed skillset_schema.cue
var schemaBytes []byte

// Parse reads and parses a skillset document from the given path.
func Parse(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skillset at %s: %w", path, err)
	}

	return ParseBytes(data, path)
}

// ParseBytes parses skillset content from bytes. The path is used for error
// messages and for resolving instruction document references later on.
//
// Uses cueutil.Decode for the 3-step CUE parsing flow: compile schema →
// compile user data → validate and decode. Structural validation the schema
// cannot express (duplicate IDs, self-relations, stack/agent references)
// runs afterwards.
func ParseBytes(data []byte, path string) (*Document, error) {
	doc, err := cueutil.Decode[Document](
		schemaBytes,
		data,
		"#Skillset",
		cueutil.WithFilename(path),
	)
	if err != nil {
		return nil, err
	}

	doc.FilePath = path

	if err := doc.validate(); err != nil {
		return nil, err
	}

	return doc, nil
}
