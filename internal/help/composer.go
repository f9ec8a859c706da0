// SPDX-License-Identifier: MPL-2.0

// Package help composes the complete help screen of a command: usage line,
// prose, panels of options and subcommands, epilog, and the error and abort
// screens of the host framework.
package help

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/invowk/richhelp/internal/columns"
	"github.com/invowk/richhelp/internal/panels"
	"github.com/invowk/richhelp/internal/textflow"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tree"
	"github.com/invowk/richhelp/internal/tui"
	"github.com/invowk/richhelp/pkg/command"
)

type (
	// Composer renders help for one console and one resolved configuration.
	// It holds no per-command state and may be reused.
	Composer struct {
		console *tui.Console
		cfg     theme.Config
		styles  theme.Styles

		optionTypes     []theme.ColumnType
		commandTypes    []theme.ColumnType
		optionSections  []theme.HelpSection
		commandSections []theme.HelpSection
	}

	// Context identifies the command being rendered by its chain of commands,
	// from the root to the command itself.
	Context struct {
		Chain []command.Node
	}
)

// NewContext resolves names below root into a Context.
func NewContext(root command.Node, names ...string) Context {
	return Context{Chain: command.Lookup(root, names...)}
}

// Command returns the command being rendered.
func (c Context) Command() command.Node { return c.Chain[len(c.Chain)-1] }

// Path returns the space-separated invocation path.
func (c Context) Path() string { return command.PathString(c.Chain) }

// New creates a Composer. Invalid column or section names in cfg are logged
// and replaced by the defaults.
func New(con *tui.Console, cfg theme.Config) *Composer {
	def := theme.Defaults()
	c := &Composer{
		console: con,
		cfg:     cfg,
		styles:  theme.Compile(cfg, con.Renderer()),
	}
	c.optionTypes = columnTypes(cfg.OptionsTableColumnTypes, def.OptionsTableColumnTypes)
	c.commandTypes = columnTypes(cfg.CommandsTableColumnTypes, def.CommandsTableColumnTypes)
	c.optionSections = helpSections(cfg.OptionsTableHelpSections, def.OptionsTableHelpSections)
	c.commandSections = helpSections(cfg.CommandsTableHelpSections, def.CommandsTableHelpSections)
	return c
}

// Config returns the configuration the composer renders with.
func (c *Composer) Config() theme.Config { return c.cfg }

// Help renders the help screen of ctx's command. Commands that opt into the
// tree view get it instead of panels.
func (c *Composer) Help(ctx Context) string {
	cmd := ctx.Command()
	info := cmd.Info()
	colCtx := c.columnContext(ctx)

	if info.TreeHelp {
		return tree.Render(ctx.Chain, tree.Options{Console: c.console, Columns: colCtx, Usage: c.usage(ctx)})
	}

	var b strings.Builder
	width := c.console.Width()
	if c.cfg.HeaderText != "" {
		writeBlock(&b, tui.Indent(c.prose(c.cfg.HeaderText, c.styles.HeaderText, c.styles.HeaderText, "", width-1), 1))
	}
	writeBlock(&b, c.usage(ctx))

	flow := c.flowOptions()
	flow.Style, flow.FirstStyle = c.styles.Helptext, c.styles.HelptextFirst
	flow.Deprecated, flow.DeprecatedStyle = c.cfg.DeprecatedMarker(info.Deprecated), c.styles.Deprecated
	if text := textflow.Wrapped(info.Help, flow, width-1); text != "" {
		writeBlock(&b, tui.Indent(text, 1))
	}

	res := panels.Assign(cmd, ctx.Path(), c.cfg)
	var boxes []string
	for _, p := range res.Order() {
		if box := c.panel(p, colCtx); box != "" {
			boxes = append(boxes, box)
		}
	}
	if len(boxes) > 0 {
		writeBlock(&b, strings.Join(boxes, "\n"))
	}

	if info.Epilog != "" {
		writeBlock(&b, tui.Indent(c.prose(info.Epilog, c.styles.EpilogText, c.styles.EpilogText, "", width-1), 1))
	}
	if c.cfg.FooterText != "" {
		writeBlock(&b, tui.Indent(c.prose(c.cfg.FooterText, c.styles.FooterText, c.styles.FooterText, "", width-1), 1))
	}
	return b.String()
}

// Abort renders the single line printed when the user cancels.
func (c *Composer) Abort() string {
	return c.styles.Aborted.Render(c.cfg.AbortedText) + "\n"
}

func (c *Composer) columnContext(ctx Context) columns.Context {
	info := ctx.Command().Info()
	return columns.Context{
		Config:           c.cfg,
		Styles:           c.styles,
		Flow:             c.flowOptions(),
		Sections:         c.optionSections,
		AutoEnvvarPrefix: envvarPrefix(ctx.Chain),
		ShowDefault:      info.ShowDefault,
	}
}

// flowOptions returns the text settings shared by every piece of prose.
func (c *Composer) flowOptions() textflow.Options {
	o := textflow.Options{
		Markup:         c.cfg.Markup(),
		Emojis:         c.cfg.Emojis(),
		ParagraphBreak: c.cfg.TextParagraphLinebreaks,
		Markdown:       c.console.Markdown,
		ParseStyle: func(spec string) (lipgloss.Style, error) {
			return theme.ParseStyle(c.console.Renderer(), spec)
		},
		Highlights: map[theme.HighlightKind]lipgloss.Style{
			theme.HighlightOption:  c.styles.Option,
			theme.HighlightSwitch:  c.styles.Switch,
			theme.HighlightMetavar: c.styles.Metavar,
		},
	}
	o.Highlighter = c.cfg.Highlighter
	if o.Highlighter == nil {
		o.Highlighter = theme.OptionHighlighter()
	}
	return o
}

func (c *Composer) prose(raw string, style, first lipgloss.Style, deprecated string, width int) string {
	o := c.flowOptions()
	o.Style, o.FirstStyle = style, first
	o.Deprecated, o.DeprecatedStyle = deprecated, c.styles.Deprecated
	return textflow.Wrapped(raw, o, width)
}

// envvarPrefix derives the env-var prefix of the last command in chain: the
// nearest explicit prefix, extended by the upper-cased names of the commands
// below it.
func envvarPrefix(chain []command.Node) string {
	prefix := ""
	for _, n := range chain {
		info := n.Info()
		switch {
		case info.AutoEnvvarPrefix != "":
			prefix = info.AutoEnvvarPrefix
		case prefix != "":
			prefix += "_" + strings.ToUpper(strings.ReplaceAll(info.Name, "-", "_"))
		}
	}
	return prefix
}

func columnTypes(names, fallback []string) []theme.ColumnType {
	types, err := theme.ColumnTypes(names)
	if err != nil {
		theme.Logger().Warn("invalid column types, using defaults", "err", err)
		types, _ = theme.ColumnTypes(fallback)
	}
	return types
}

func helpSections(names, fallback []string) []theme.HelpSection {
	sections, err := theme.HelpSections(names)
	if err != nil {
		theme.Logger().Warn("invalid help sections, using defaults", "err", err)
		sections, _ = theme.HelpSections(fallback)
	}
	return sections
}

// writeBlock appends s separated from previous output by a blank line.
func writeBlock(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		b.WriteString("\n")
	}
}

// withoutMetavar drops the metavar column when show_metavars_column is off.
func (c *Composer) withoutMetavar(types []theme.ColumnType) []theme.ColumnType {
	if c.cfg.ShowMetavarsColumn {
		return types
	}
	return slices.DeleteFunc(slices.Clone(types), func(t theme.ColumnType) bool {
		return t == theme.ColumnMetavar
	})
}
