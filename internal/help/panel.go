// SPDX-License-Identifier: MPL-2.0

package help

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/invowk/richhelp/internal/columns"
	"github.com/invowk/richhelp/internal/panels"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tui"
)

// panelLook is the resolved appearance of one panel.
type panelLook struct {
	frame       tui.Frame
	border      lipgloss.Style
	title       lipgloss.Style
	help        lipgloss.Style
	align       tui.TextAlign
	leading     int
	showLines   bool
	types       []theme.ColumnType
	inlineTitle bool
}

// panel renders p as a titled box holding its help and rows. Panels whose
// rows are all empty render nothing.
func (c *Composer) panel(p *panels.Panel, ctx columns.Context) string {
	look := c.look(p)

	var rows [][]string
	if len(p.Commands) > 0 {
		ctx.Sections = c.commandSections
		for _, n := range p.Commands {
			rows = append(rows, columns.ForCommand(n, look.types, ctx))
		}
	} else {
		for _, prm := range p.Params {
			rows = append(rows, columns.For(prm, look.types, ctx))
		}
	}
	types, rows := columns.Compact(look.types, rows)
	if len(types) == 0 {
		return ""
	}

	width := c.console.Width()
	inner := width - 2
	if look.frame.Sides {
		inner -= 2
	}

	title := look.title.Render(p.DisplayTitle())
	var body []string
	if p.Help != "" {
		help := c.prose(p.Help, look.help, look.help, "", inner)
		if look.inlineTitle {
			title += look.help.Render(c.cfg.PanelInlineHelpDelimiter) + strings.ReplaceAll(help, "\n", " ")
		} else {
			body = append(body, help)
		}
	}

	wrapCol := slices.Index(types, theme.ColumnHelp)
	if wrapCol < 0 {
		wrapCol = len(types) - 1
	}
	body = append(body, c.console.Table(rows, tui.TableOptions{
		Width:      inner,
		WrapColumn: wrapCol,
		Leading:    look.leading,
		ShowLines:  look.showLines,
		LineStyle:  look.border,
	}))

	return c.console.Panel(strings.Join(body, "\n"), tui.PanelOptions{
		Title:       title,
		Frame:       look.frame,
		BorderStyle: look.border,
		Align:       look.align,
		Width:       width,
	})
}

// look merges the panel's own overrides over the configured defaults of its
// kind.
func (c *Composer) look(p *panels.Panel) panelLook {
	cfg := c.cfg
	l := panelLook{inlineTitle: cfg.PanelInlineHelpInTitle}
	box, align := cfg.StyleOptionsPanelBox, cfg.AlignOptionsPanel
	if len(p.Commands) > 0 {
		box, align = cfg.StyleCommandsPanelBox, cfg.AlignCommandsPanel
		l.border = c.styles.Parse(p.BorderStyle, c.styles.CommandsPanelBorder)
		l.title = c.styles.Parse(p.TitleStyle, c.styles.CommandsPanelTitle)
		l.help = c.styles.Parse(p.HelpStyle, c.styles.CommandsPanelHelp)
		l.leading, l.showLines = cfg.StyleCommandsTableLeading, cfg.StyleCommandsTableShowLines
		l.types = c.commandTypes
	} else {
		l.border = c.styles.Parse(p.BorderStyle, c.styles.OptionsPanelBorder)
		l.title = c.styles.Parse(p.TitleStyle, c.styles.OptionsPanelTitle)
		l.help = c.styles.Parse(p.HelpStyle, c.styles.OptionsPanelHelp)
		l.leading, l.showLines = cfg.StyleOptionsTableLeading, cfg.StyleOptionsTableShowLines
		l.types = c.withoutMetavar(c.optionTypes)
	}
	if p.Box != "" {
		box = p.Box
	}
	if p.Align != "" {
		align = p.Align
	}
	if len(p.ColumnTypes) > 0 {
		if types, err := theme.ColumnTypes(p.ColumnTypes); err == nil {
			l.types = types
		} else {
			theme.Logger().Warn("invalid panel column types", "panel", p.Name, "err", err)
		}
	}
	if p.InlineHelpInTitle != nil {
		l.inlineTitle = *p.InlineHelpInTitle
	}
	l.frame = theme.BoxOrDefault(box).Frame()
	l.align = alignOrDefault(align)
	return l
}

func alignOrDefault(name string) tui.TextAlign {
	if name == "" {
		return tui.AlignLeft
	}
	a := tui.TextAlign(name)
	if err := a.Validate(); err != nil {
		theme.Logger().Warn("unknown panel alignment, using left", "align", name)
		return tui.AlignLeft
	}
	return a
}

// wrapPanel draws text in a plain panel, used by the error screen.
func (c *Composer) wrapPanel(text, title string, look panelLook) string {
	inner := c.console.Width() - 2
	if look.frame.Sides {
		inner -= 2
	}
	return c.console.Panel(tui.Wrap(text, inner), tui.PanelOptions{
		Title:       look.title.Render(title),
		Frame:       look.frame,
		BorderStyle: look.border,
		Align:       look.align,
	})
}
