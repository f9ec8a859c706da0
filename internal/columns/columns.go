// SPDX-License-Identifier: MPL-2.0

// Package columns computes the table cells of one help row: the flag and
// metavar columns of a parameter, its annotated help text, and the name,
// aliases and short help of a subcommand.
package columns

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/invowk/richhelp/internal/textflow"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command"
)

type (
	// Context carries what a row needs besides the parameter itself.
	Context struct {
		Config theme.Config
		Styles theme.Styles
		// Flow holds the text backend settings; its styles are replaced per
		// column.
		Flow textflow.Options
		// Sections orders the annotations of the help column.
		Sections []theme.HelpSection
		// AutoEnvvarPrefix derives env-var names for options that show one
		// but declare none.
		AutoEnvvarPrefix string
		// ShowDefault is the command-level default display.
		ShowDefault bool
	}

	// styler is satisfied by lipgloss.Style.
	styler interface {
		Render(strs ...string) string
	}
)

// For returns one cell per column type for parameter p.
func For(p *command.Parameter, types []theme.ColumnType, ctx Context) []string {
	cells := make([]string, len(types))
	for i, ct := range types {
		cells[i] = paramCell(p, ct, ctx)
	}
	return cells
}

func paramCell(p *command.Parameter, ct theme.ColumnType, ctx Context) string {
	s := ctx.Styles
	switch ct {
	case theme.ColumnRequired:
		if p.Required {
			return s.RequiredShort.Render(ctx.Config.RequiredShortString)
		}
		return ""
	case theme.ColumnOptLong:
		if p.IsArgument() {
			return s.Argument.Render(p.Label())
		}
		return optCell(longForms(p.Opts), longForms(p.SecondaryOpts), s.Option, s.OptionNegative, ctx)
	case theme.ColumnOptShort:
		if p.IsArgument() {
			return ""
		}
		return optCell(shortForms(p.Opts), shortForms(p.SecondaryOpts), s.Switch, s.SwitchNegative, ctx)
	case theme.ColumnOptAll:
		return optAll(p, ctx)
	case theme.ColumnOptPrimary:
		if p.IsArgument() {
			return s.Argument.Render(p.Label())
		}
		return joinNonEmpty(ctx.Config.DelimiterComma+" ", orderForms(p.Opts, ctx, false)...)
	case theme.ColumnOptSecondary:
		if p.IsArgument() {
			return ""
		}
		return joinNonEmpty(ctx.Config.DelimiterComma+" ", orderForms(p.SecondaryOpts, ctx, true)...)
	case theme.ColumnMetavar:
		return Metavar(p, ctx)
	case theme.ColumnOptAllMetavar:
		return joinNonEmpty(" ", optAll(p, ctx), Metavar(p, ctx))
	case theme.ColumnHelp:
		return Help(p, ctx)
	case theme.ColumnDefault:
		return defaultSection(p, ctx)
	case theme.ColumnEnvvar:
		return envvarSection(p, ctx)
	case theme.ColumnDeprecated:
		return deprecatedSection(p.Deprecated, ctx)
	default:
		return ""
	}
}

// optAll lists every form of an option in one cell, long forms first unless
// short_flags_first is set.
func optAll(p *command.Parameter, ctx Context) string {
	if p.IsArgument() {
		return ctx.Styles.Argument.Render(p.Label())
	}
	long := optCell(longForms(p.Opts), longForms(p.SecondaryOpts), ctx.Styles.Option, ctx.Styles.OptionNegative, ctx)
	short := optCell(shortForms(p.Opts), shortForms(p.SecondaryOpts), ctx.Styles.Switch, ctx.Styles.SwitchNegative, ctx)
	if ctx.Config.ShortFlagsFirst {
		long, short = short, long
	}
	return joinNonEmpty(ctx.Config.DelimiterComma+" ", long, short)
}

// optCell renders primary forms joined by commas, then the negating forms
// after a slash: "--shout/--no-shout".
func optCell(primary, secondary []string, st, neg styler, ctx Context) string {
	prim := make([]string, len(primary))
	for i, o := range primary {
		prim[i] = st.Render(o)
	}
	cell := strings.Join(prim, ctx.Config.DelimiterComma+" ")
	if len(secondary) == 0 {
		return cell
	}
	sec := make([]string, len(secondary))
	for i, o := range secondary {
		sec[i] = neg.Render(o)
	}
	return joinNonEmpty(ctx.Config.DelimiterSlash, cell, strings.Join(sec, ctx.Config.DelimiterSlash))
}

// orderForms styles forms with long ones first (or short ones with
// short_flags_first).
func orderForms(forms []string, ctx Context, negative bool) []string {
	long, short := longForms(forms), shortForms(forms)
	optSt, swSt := ctx.Styles.Option, ctx.Styles.Switch
	if negative {
		optSt, swSt = ctx.Styles.OptionNegative, ctx.Styles.SwitchNegative
	}
	out := make([]string, 0, len(forms))
	appendStyled := func(fs []string, st styler) {
		for _, f := range fs {
			out = append(out, st.Render(f))
		}
	}
	if ctx.Config.ShortFlagsFirst {
		appendStyled(short, swSt)
		appendStyled(long, optSt)
	} else {
		appendStyled(long, optSt)
		appendStyled(short, swSt)
	}
	return out
}

func longForms(opts []string) []string {
	var out []string
	for _, o := range opts {
		if isLong(o) {
			out = append(out, o)
		}
	}
	return out
}

func shortForms(opts []string) []string {
	var out []string
	for _, o := range opts {
		if !isLong(o) {
			out = append(out, o)
		}
	}
	return out
}

// isLong reports whether an invocation string is a long form. Single-prefix
// words such as "-name" count as long.
func isLong(o string) bool {
	if strings.HasPrefix(o, "--") {
		return true
	}
	name := strings.TrimLeft(o, "-+/")
	return len([]rune(name)) > 1
}

// Compact drops columns that are empty in every row. In particular the
// required column disappears from a panel with no required member.
func Compact(types []theme.ColumnType, rows [][]string) ([]theme.ColumnType, [][]string) {
	keep := make([]bool, len(types))
	for _, r := range rows {
		for i := range types {
			if i < len(r) && strings.TrimSpace(ansi.Strip(r[i])) != "" {
				keep[i] = true
			}
		}
	}
	outTypes := make([]theme.ColumnType, 0, len(types))
	for i, ct := range types {
		if keep[i] {
			outTypes = append(outTypes, ct)
		}
	}
	outRows := make([][]string, len(rows))
	for ri, r := range rows {
		row := make([]string, 0, len(outTypes))
		for i := range types {
			if keep[i] && i < len(r) {
				row = append(row, r[i])
			}
		}
		outRows[ri] = row
	}
	return outTypes, outRows
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
