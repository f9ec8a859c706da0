// SPDX-License-Identifier: MPL-2.0

package columns

import (
	"strconv"
	"strings"

	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command"
)

var typeMetavars = map[string]string{
	"":                   "TEXT",
	command.TypeText:     "TEXT",
	command.TypeInteger:  "INTEGER",
	command.TypeFloat:    "FLOAT",
	command.TypePath:     "PATH",
	command.TypeFile:     "FILE",
	command.TypeDuration: "DURATION",
	command.TypeBoolean:  "BOOLEAN",
}

// Metavar renders the metavar column: the override or the type's placeholder,
// followed by the range description of numeric types. Boolean flags have
// none; counters only show a range that is narrower than "x>=0".
func Metavar(p *command.Parameter, ctx Context) string {
	base := MetavarText(p)
	desc := RangeText(p)
	if desc == "" {
		if base == "" {
			return ""
		}
		return ctx.Styles.Metavar.Render(base)
	}
	rng := theme.Template(ctx.Config.RangeString, desc)
	if base == "" {
		return ctx.Styles.RangeAppend.Render(strings.TrimLeft(rng, " "))
	}
	return ctx.Styles.Metavar.Render(base) + ctx.Styles.RangeAppend.Render(rng)
}

// MetavarText returns the unstyled placeholder of p.
func MetavarText(p *command.Parameter) string {
	if p.IsBoolFlag() || p.Count {
		return ""
	}
	if p.Metavar != "" && !p.IsArgument() {
		return p.Metavar
	}
	if p.Type.Metavar != "" {
		return p.Type.Metavar
	}
	if len(p.Type.Choices) > 0 {
		return "[" + strings.Join(p.Type.Choices, "|") + "]"
	}
	if mv, ok := typeMetavars[p.Type.Name]; ok {
		return mv
	}
	return strings.ToUpper(p.Type.Name)
}

// RangeText describes the numeric range of p, such as "1<=x<=6" or "x>0".
// A counter bounded only by zero below has no description.
func RangeText(p *command.Parameter) string {
	t := p.Type
	if !t.HasRange() {
		return ""
	}
	if p.Count && t.Max == nil && (t.Min == nil || (*t.Min == 0 && !t.MinOpen)) {
		return ""
	}
	switch {
	case t.Min != nil && t.Max != nil:
		return formatNumber(*t.Min) + less(t.MinOpen) + "x" + less(t.MaxOpen) + formatNumber(*t.Max)
	case t.Min != nil:
		return "x" + greater(t.MinOpen) + formatNumber(*t.Min)
	default:
		return "x" + less(t.MaxOpen) + formatNumber(*t.Max)
	}
}

func less(open bool) string {
	if open {
		return "<"
	}
	return "<="
}

func greater(open bool) string {
	if open {
		return ">"
	}
	return ">="
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
