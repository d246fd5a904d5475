// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"cmp"

	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/slices"
)

type Id int

const (
	FolderNotFoundId Id = iota + 1
	PermissionDeniedId
	InvalidColorId
	ConfigLoadFailedId
	LedgerCorruptId
	HostNotSupportedId
	WatchFailedId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink
	extLinks []HttpLink // external links that might be useful for the user
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
		extraMd += "## See also:\n"
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

	folderNotFoundIssue = &Issue{
		id: FolderNotFoundId,
		mdMsg: `
# Folder not found!

Only existing directories can be colored.

## Things you can try:
- Check the path for typos; quote it if it contains spaces:
~~~
$ colorit apply "C:\Users\me\My Projects" blue
~~~

- Make sure the path names a folder, not a file
- If the folder was moved, drop its old history entry:
~~~
$ colorit history forget "C:\old\location"
~~~`,
	}

	permissionDeniedIssue = &Issue{
		id: PermissionDeniedId,
		mdMsg: `
# Permission denied!

Windows refused to write the folder icon or change the folder's attributes.

## Common causes:
- The folder belongs to another user or to the system
- The folder lives on a read-only or network share
- Controlled folder access (ransomware protection) blocks unknown programs

## Things you can try:
- Pick a folder inside your own profile
- Run colorit from an elevated prompt for system folders
- Allow colorit through controlled folder access
- Remove a half-applied color and retry:
~~~
$ colorit remove <folder>
$ colorit apply <folder> <color>
~~~`,
		extLinks: []HttpLink{"https://learn.microsoft.com/windows/security/threat-protection/microsoft-defender-antivirus/controlled-folders"},
	}

	invalidColorIssue = &Issue{
		id: InvalidColorId,
		mdMsg: `
# Invalid color!

Colors are given as a preset name or as a hex value.

## Accepted forms:
- A preset name, case-insensitive (list them with ` + "`colorit presets`" + `)
- ` + "`#RGB`" + `, ` + "`#RRGGBB`" + ` or ` + "`#RRGGBBAA`" + `; the ` + "`#`" + ` is optional

## Examples:
~~~
$ colorit apply ./photos red
$ colorit apply ./photos "light blue"
$ colorit apply ./photos "#3498DB"
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

The configuration file could not be read or does not match the schema.

## Things you can try:
- Show where colorit looks for its configuration:
~~~
$ colorit config path
~~~

- Compare your file with the defaults:
~~~
$ colorit config dump
~~~

- Durations are strings such as ` + "`\"250ms\"`" + ` or ` + "`\"1s\"`" + `
- File names must not contain path separators`,
	}

	ledgerCorruptIssue = &Issue{
		id: LedgerCorruptId,
		mdMsg: `
# Color history was unreadable!

The history file was damaged, most likely by an interrupted write. colorit
is working from an empty history; your folders keep their colors, only the
list of colored folders was lost.

## Things you can try:
- Re-apply a color to put a folder back on the list
- Copy the damaged ` + "`history.json`" + ` aside before the next change overwrites it.
  Unless ` + "`ledger.path`" + ` is set, it sits in the configuration directory:
~~~
$ colorit config path
~~~`,
	}

	hostNotSupportedIssue = &Issue{
		id: HostNotSupportedId,
		mdMsg: `
# Host not supported!

Folder icons are a Windows shell feature. On this system colorit can write
the icon files, but nothing will display them.

## Things you can try:
- Run colorit on Windows
- Use ` + "`colorit preview`" + ` to inspect the generated icon on any system`,
	}

	watchFailedIssue = &Issue{
		id: WatchFailedId,
		mdMsg: `
# Guard watcher stopped!

The filesystem watcher ran out of resources or lost its handles.

## Things you can try:
- Forget folders you no longer need guarded:
~~~
$ colorit history forget <folder>
~~~

- On Linux, raise the inotify watch limit:
~~~
$ sudo sysctl fs.inotify.max_user_watches=524288
~~~`,
	}

	issues = map[Id]*Issue{
		folderNotFoundIssue.Id():   folderNotFoundIssue,
		permissionDeniedIssue.Id(): permissionDeniedIssue,
		invalidColorIssue.Id():     invalidColorIssue,
		configLoadFailedIssue.Id(): configLoadFailedIssue,
		ledgerCorruptIssue.Id():    ledgerCorruptIssue,
		hostNotSupportedIssue.Id(): hostNotSupportedIssue,
		watchFailedIssue.Id():      watchFailedIssue,
	}
)

// Values returns every catalog entry ordered by id.
func Values() []*Issue {
	out := make([]*Issue, 0, len(issues))
	for _, i := range issues {
		out = append(out, i)
	}
	slices.SortFunc(out, func(a, b *Issue) int { return cmp.Compare(a.id, b.id) })
	return out
}

func Get(id Id) *Issue {
	return issues[id]
}
