// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	SkillsetNotFoundId Id = iota + 1
	SkillsetParseErrorId
	CatalogInvalidId
	ResolutionFailedId
	ConfigLoadFailedId
	CorruptVersionRecordId
	OutputWriteFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // must never be empty, because we need to have docs about all issue types
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	skillsetNotFoundIssue = &Issue{
		id: SkillsetNotFoundId,
		mdMsg: `
# No skillset found!

We searched for a skillset document but couldn't find one in the expected locations.

## Search locations (in order of precedence):
1. Path given with --skillset
2. skillset_path in your config file
3. skillset.cue in the current directory

## Things you can try:
- Create a skillset in your current directory:
~~~
$ skillforge init
~~~

- Or point at an existing one:
~~~
$ skillforge build --skillset /path/to/skillset.cue
~~~

## Example skillset structure:
~~~cue
name: "My Bundle"

categories: [
  {id: "tooling"},
]

skills: [
  {
    id:       "go-tooling-lint"
    name:     "Go Lint"
    category: "tooling"
  },
]

agents: [
  {
    name:        "reviewer"
    description: "Reviews changes"
    skills: [{id: "go-tooling-lint"}]
  },
]
~~~`,
	}

	skillsetParseErrorIssue = &Issue{
		id: SkillsetParseErrorId,
		mdMsg: `
# Failed to parse skillset!

Your skillset document contains syntax errors or invalid declarations.

## Common issues:
- Invalid CUE syntax (missing quotes, braces, etc.)
- Skill IDs that don't match the required shape (three or more kebab-case segments)
- Unknown field names
- Missing required fields (id, name, category for skills)

## Things you can try:
- Check the error message above for the specific line/column
- Validate the document without compiling:
~~~
$ skillforge validate
~~~

- Run with verbose mode for more details:
~~~
$ skillforge --verbose build
~~~

## Example of a valid skill declaration:
~~~cue
skills: [
  {
    id:       "web-framework-react"
    name:     "React"
    category: "framework"
    hint:     "Component-based UI work"
    requires: ["web-tooling-bundler"]
  },
]
~~~`,
	}

	catalogInvalidIssue = &Issue{
		id: CatalogInvalidId,
		mdMsg: `
# Invalid skill catalog!

The skillset parsed cleanly, but its declarations don't hold together as a catalog.

## Common causes:
- A requires/conflicts_with/recommends target that no skill declares
- A skill naming itself in one of its own relations
- A skill assigned to an undeclared category
- A required category with no member skills

## Things you can try:
- Run the staged checks to see every violation at once:
~~~
$ skillforge validate
~~~

- Check relation targets for typos against the declared skill IDs
- Declare the missing category or remove the reference`,
	}

	resolutionFailedIssue = &Issue{
		id: ResolutionFailedId,
		mdMsg: `
# Resolution failed!

One or more agents' skill selections violate the catalog's constraints.

## Common causes:
- Two selected skills that declare a conflict
- A requires chain that forms a cycle
- Two skills from an exclusive category selected together
- A required category left without a selected skill

## Things you can try:
- Read the per-agent errors above; every broken agent is reported
- Drop one side of each conflicting pair from the agent's selection
- Pick a single skill for each exclusive category
- Add a skill from each required category:
~~~
$ skillforge build --skill <skill-id>
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Could not load the skillforge configuration file.

## Configuration file locations:
- Linux: ~/.config/skillforge/config.cue
- macOS: ~/Library/Application Support/skillforge/config.cue
- Windows: %APPDATA%\skillforge\config.cue

## Things you can try:
- Create a default configuration:
~~~
$ skillforge config init
~~~

- Check the configuration syntax
- Remove the config file to use defaults:
~~~
$ rm ~/.config/skillforge/config.cue
~~~

## Example configuration:
~~~cue
skillset_path: "./skillset.cue"
output_dir:    "./dist"

ui: {
  color_scheme: "auto"
  verbose: false
}
~~~`,
	}

	corruptVersionRecordIssue = &Issue{
		id: CorruptVersionRecordId,
		mdMsg: `
# Corrupt version record!

The version record next to your compiled bundle could not be read, so the next
version cannot be derived from it.

## Common causes:
- The file was hand-edited and no longer parses
- A partial write from an interrupted process
- A different tool wrote to the same path

## Things you can try:
- Discard the record and restart version history at 1.0.0:
~~~
$ skillforge build --reset-version
~~~

- Or restore the file from version control if the history matters`,
	}

	outputWriteFailedIssue = &Issue{
		id: OutputWriteFailedId,
		mdMsg: `
# Failed to write the bundle!

Compilation succeeded but the output files could not be written.

## Common causes:
- The output directory is not writable
- The disk is full
- A directory exists where a file should be written

## Things you can try:
- Check permissions on the output directory
- Pick another output directory:
~~~
$ skillforge build --out ./dist
~~~

- Remove stale entries that block the agents/ directory`,
	}

	issues = map[Id]*Issue{
		skillsetNotFoundIssue.Id():     skillsetNotFoundIssue,
		skillsetParseErrorIssue.Id():   skillsetParseErrorIssue,
		catalogInvalidIssue.Id():       catalogInvalidIssue,
		resolutionFailedIssue.Id():     resolutionFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		corruptVersionRecordIssue.Id(): corruptVersionRecordIssue,
		outputWriteFailedIssue.Id():    outputWriteFailedIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
