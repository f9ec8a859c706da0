// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/invowk/richhelp/internal/tui"
)

// Catalog articles, numbered from 1 so the zero ID means "none".
const (
	ConfigNotFoundID ID = iota + 1
	ConfigInvalidID
	ThemeNotFoundID
	ThemeFileInvalidID
	FormatInvalidID
)

type (
	// ID identifies a catalog article.
	ID int

	// Issue is a markdown article explaining an error and how to recover.
	Issue struct {
		id       ID
		markdown string
		docLinks []string
	}
)

// ID returns the article's identifier.
func (i *Issue) ID() ID { return i.id }

// Markdown returns the article source.
func (i *Issue) Markdown() string { return i.markdown }

// DocLinks returns the documentation links appended to the article.
func (i *Issue) DocLinks() []string { return slices.Clone(i.docLinks) }

// Render renders the article through the console's markdown renderer.
func (i *Issue) Render(con *tui.Console) (string, error) {
	src := i.markdown
	if len(i.docLinks) > 0 {
		var b strings.Builder
		b.WriteString(src)
		b.WriteString("\n\n## See also\n")
		for _, link := range i.docLinks {
			fmt.Fprintf(&b, "\n- <%s>", link)
		}
		src = b.String()
	}
	return con.Markdown(src, con.Width(), false)
}

var issues = map[ID]*Issue{
	ConfigNotFoundID: {
		id: ConfigNotFoundID,
		markdown: `
# Configuration file not found

The file passed with ` + "`--config`" + ` does not exist.

## Search locations, when no file is given
1. ` + "`$XDG_CONFIG_HOME/richhelp/config.{cue,toml,yaml,json}`" + `
2. ` + "`config.{cue,toml,yaml,json}`" + ` in the working directory

## Things you can try
~~~
$ richhelp config show --format cue > ~/.config/richhelp/config.cue
~~~`,
		docLinks: []string{"https://github.com/invowk/richhelp#configuration"},
	},
	ConfigInvalidID: {
		id: ConfigInvalidID,
		markdown: `
# Invalid configuration

The configuration file does not match the schema. Every key is optional,
but known keys must have the right type and enumerated values must be
spelled exactly.

## Things you can try
- Compare your file with ` + "`richhelp config show`" + `
- Box styles are one of rounded, square, heavy, double, ascii, simple, minimal, hidden or none
- Column types and help sections are lists of names, not comma-separated strings`,
	},
	ThemeNotFoundID: {
		id: ThemeNotFoundID,
		markdown: `
# Unknown theme

Themes are named ` + "`palette-format`" + `, for example ` + "`nord-slim`" + `.
A bare palette or format name selects the default for the other half.

## Things you can try
~~~
$ richhelp themes
~~~`,
	},
	ThemeFileInvalidID: {
		id: ThemeFileInvalidID,
		markdown: `
# Invalid theme file

Theme files are TOML with a ` + "`[palette]`" + ` table, a ` + "`[format]`" + ` table or both:

~~~toml
name = "ocean"

[palette]
style_option = "bold #0077be"

[format]
style_options_panel_box = "heavy"
~~~`,
	},
	FormatInvalidID: {
		id: FormatInvalidID,
		markdown: `
# Unknown output format

Help can be exported as ` + "`text`" + `, ` + "`plain`" + `, ` + "`html`" + ` or ` + "`svg`" + `.`,
	},
}

// Get returns the article with the given ID, or nil.
func Get(id ID) *Issue {
	return issues[id]
}

// Values returns every article ordered by ID.
func Values() []*Issue {
	ids := slices.Sorted(maps.Keys(issues))
	out := make([]*Issue, 0, len(ids))
	for _, id := range ids {
		out = append(out, issues[id])
	}
	return out
}
