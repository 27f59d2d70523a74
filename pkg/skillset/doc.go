// SPDX-License-Identifier: MPL-2.0

// Package skillset defines the typed document model for skillset.cue files:
// the skill catalog source (skills, categories, relations), the declared
// agents, and the named stacks that preselect skills per agent.
//
// Parsing is schema-first: the embedded CUE schema rejects malformed documents
// before any Go code sees them, and the Go-side validation in this package
// covers only what the schema cannot express (duplicate identifiers,
// self-referential relations, stack entries naming unknown agents).
// Referential checks across skills (dangling relation targets, unknown
// categories) are the catalog's job, not this package's.
package skillset
