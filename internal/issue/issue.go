// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"slices"
	"strings"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
)

const (
	ArchiveNotFoundId Id = iota + 1
	InvalidPackageId
	UnsafeArchiveId
	RetryBudgetExhaustedId
	MetadataParseFailedId
	PackFailedId
	ConfigLoadFailedId
	PermissionDeniedId
)

type (
	// Id identifies a catalog page.
	Id int

	MarkdownMsg string

	HttpLink string

	// Issue is one catalog page.
	Issue struct {
		id       Id
		mdMsg    MarkdownMsg
		docLinks []HttpLink
	}
)

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

// Render renders the page for a terminal. style is a glamour style name
// ("auto", "dark", "light") or a path to a JSON style file.
func (i *Issue) Render(style string) (string, error) {
	md := string(i.mdMsg)
	if len(i.docLinks) > 0 {
		var sb strings.Builder
		sb.WriteString(md)
		sb.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			sb.WriteString("- <" + string(link) + ">\n")
		}
		md = sb.String()
	}
	return render(md, style)
}

var (
	render = glamour.Render

	unityManualLink HttpLink = "https://docs.unity3d.com/Manual/AssetPackages.html"

	archiveNotFoundIssue = &Issue{
		id: ArchiveNotFoundId,
		mdMsg: `
# Package not found!

The path given on the command line does not point to a readable file.

## Things you can try:
- Check the spelling and quote paths that contain spaces:
~~~
$ upkremap "My Assets.unitypackage"
~~~
- Pass several packages at once; each one is processed on its own.`,
	}

	invalidPackageIssue = &Issue{
		id: InvalidPackageId,
		mdMsg: `
# Not a Unity package!

A .unitypackage holds one directory per asset, each named by the asset's GUID.
This archive has a top-level item that is not a directory, so it was left alone
and no output was written.

## Things you can try:
- Re-export the package from Unity with *Assets > Export Package...*
- Check that the file is not a plain tar.gz of a project folder`,
		docLinks: []HttpLink{unityManualLink},
	}

	unsafeArchiveIssue = &Issue{
		id: UnsafeArchiveId,
		mdMsg: `
# Unsafe archive contents!

The archive contains a member that would be written outside the working
directory (an absolute path, a '..' component, or a link pointing elsewhere),
or it exceeds the extraction size limits.

## Things you can try:
- Only remap packages from sources you trust
- Re-export the package from Unity`,
	}

	retryBudgetExhaustedIssue = &Issue{
		id: RetryBudgetExhaustedId,
		mdMsg: `
# Could not generate unique GUIDs!

Every generation pass produced an identifier that collided with another new
identifier or with an original one. This should never happen with the default
generator.

## Things you can try:
- Run again; generation is time-salted
- Raise the limit:
~~~
$ upkremap --max-attempts 10000 package.unitypackage
~~~`,
	}

	metadataParseFailedIssue = &Issue{
		id: MetadataParseFailedId,
		mdMsg: `
# Asset metadata could not be parsed!

An entry's *asset.meta* is not valid YAML. The package was left unchanged.

## Things you can try:
- Reimport the asset in Unity so the .meta file is regenerated
- Run with --verbose to see which entry failed`,
	}

	packFailedIssue = &Issue{
		id: PackFailedId,
		mdMsg: `
# Could not write the remapped package!

The output archive is written next to the input. Nothing is left behind when
writing fails.

## Things you can try:
- Check free disk space and write permission on the directory
- Choose another suffix with --suffix if a file of that name is locked`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

## Things you can try:
- Show where configuration is read from:
~~~
$ upkremap config path
~~~
- Write a fresh file with every default:
~~~
$ upkremap config init
~~~
- Check the CUE syntax and the allowed values in the error above`,
		docLinks: []HttpLink{"https://cuelang.org/docs/"},
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

## Things you can try:
- Check that you can read the package and write to its directory
- Set TMPDIR to a writable location for the working area`,
	}

	issues = map[Id]*Issue{
		archiveNotFoundIssue.Id():      archiveNotFoundIssue,
		invalidPackageIssue.Id():       invalidPackageIssue,
		unsafeArchiveIssue.Id():        unsafeArchiveIssue,
		retryBudgetExhaustedIssue.Id(): retryBudgetExhaustedIssue,
		metadataParseFailedIssue.Id():  metadataParseFailedIssue,
		packFailedIssue.Id():           packFailedIssue,
		configLoadFailedIssue.Id():     configLoadFailedIssue,
		permissionDeniedIssue.Id():     permissionDeniedIssue,
	}
)

// Values returns every catalog page ordered by Id.
func Values() []*Issue {
	out := maps.Values(issues)
	slices.SortFunc(out, func(a, b *Issue) int { return int(a.id - b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
