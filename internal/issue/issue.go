// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

const (
	ModuleNotFoundId Id = iota + 1
	ManifestParseErrorId
	RootInvalidId
	ConfigLoadFailedId
	PermissionDeniedId
	InvalidFilterId
)

type Id int

type MarkdownMsg string

type HttpLink string

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // documentation about the failure
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

// Render renders the issue as terminal Markdown using the glamour style at stylePath
// (a built-in style name such as "dark", "light" or "notty", or a JSON style file).
func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n## See also:\n"
		for _, link := range i.docLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
		for _, link := range i.extLinks {
			extraMd += "- <" + string(link) + ">\n"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	moduleNotFoundIssue = &Issue{
		id: ModuleNotFoundId,
		mdMsg: `
# A required package is not installed!

A package declares a production dependency (or the root package declares a development
dependency) that could not be found in any enclosing node_modules directory.

## Common causes:
- The package was removed from node_modules after the install
- The install was interrupted or failed part way
- The lockfile changed but the install was not re-run

## Things you can try:
- Reinstall the dependencies of the project:
~~~
$ npm install
~~~

- With yarn, verify the tree is consistent:
~~~
$ yarn install --check-files
~~~`,
		docLinks: []HttpLink{"https://nodejs.org/api/modules.html#loading-from-node_modules-folders"},
	}

	manifestParseErrorIssue = &Issue{
		id: ManifestParseErrorId,
		mdMsg: `
# Failed to parse package.json!

A package manifest exists but is not valid JSON, or one of its dependency maps does
not map package names to version strings.

## Things you can try:
- Check the file reported above for syntax errors
- Validate it with:
~~~
$ node -e 'JSON.parse(require("fs").readFileSync("package.json", "utf8"))'
~~~

- If the file lives inside node_modules, reinstall that package`,
		extLinks: []HttpLink{"https://docs.npmjs.com/cli/configuring-npm/package-json"},
	}

	rootInvalidIssue = &Issue{
		id: RootInvalidId,
		mdMsg: `
# Invalid root package!

The walk needs the directory of a package, i.e. a directory containing package.json.

## Things you can try:
- Pass the project directory explicitly:
~~~
$ depwalk walk ./path/to/project
~~~

- Run depwalk from inside the project directory`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the configuration schema.

## Things you can try:
- Print the configuration depwalk would use:
~~~
$ depwalk config show
~~~

- Write a fresh default configuration file:
~~~
$ depwalk config init
~~~

## Example config.cue:
~~~cue
walk: {
	container_dir: "node_modules"
	prebuilt_installers: ["prebuild-install"]
}
ui: {
	format: "json"
}
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

A directory or manifest in the dependency tree could not be read.

## Things you can try:
- Check the permissions of the node_modules directory
- Run depwalk as the user that performed the install`,
	}

	invalidFilterIssue = &Issue{
		id: InvalidFilterId,
		mdMsg: `
# Invalid filter!

A --type value is not a dependency category, or a --match pattern is not a valid glob.

## Valid categories:
- root
- prod
- dev
- dev-optional
- optional

## Things you can try:
~~~
$ depwalk walk --type prod,optional --match '@types/**'
~~~`,
	}

	issues = map[Id]*Issue{
		moduleNotFoundIssue.Id():     moduleNotFoundIssue,
		manifestParseErrorIssue.Id(): manifestParseErrorIssue,
		rootInvalidIssue.Id():        rootInvalidIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
		permissionDeniedIssue.Id():   permissionDeniedIssue,
		invalidFilterIssue.Id():      invalidFilterIssue,
	}
)

// Values returns every catalog entry ordered by Id.
func Values() []*Issue {
	values := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		values = append(values, i)
	}
	slices.SortFunc(values, func(a, b *Issue) int { return int(a.id) - int(b.id) })
	return values
}

func Get(id Id) *Issue {
	return issues[id]
}
