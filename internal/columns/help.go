// SPDX-License-Identifier: MPL-2.0

package columns

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/invowk/richhelp/internal/textflow"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command"
)

// Help renders the help column of p: the flowed help text with the configured
// annotations placed around it. Sections listed before "help" are prefixed,
// the rest appended. option_envvar_first moves the env-var section in front
// of the help text.
func Help(p *command.Parameter, ctx Context) string {
	sections := orderSections(ctx)
	if ctx.Config.AppendMetavarsHelp && !slices.Contains(sections, theme.SectionMetavar) {
		sections = append(sections, theme.SectionMetavar)
	}

	var pre, post []string
	var body string
	seenHelp := false
	for _, sec := range sections {
		if sec == theme.SectionHelp {
			seenHelp = true
			o := ctx.Flow
			o.Style, o.FirstStyle = ctx.Styles.OptionHelp, ctx.Styles.OptionHelp
			o.Deprecated = ""
			body = textflow.Render(p.Help, o, "\n")
			continue
		}
		text := paramSection(p, sec, ctx)
		if text == "" {
			continue
		}
		if seenHelp {
			post = append(post, text)
		} else {
			pre = append(pre, text)
		}
	}
	return arrange(pre, body, post)
}

// orderSections applies option_envvar_first to the configured sections.
func orderSections(ctx Context) []theme.HelpSection {
	sections := slices.Clone(ctx.Sections)
	if !ctx.Config.OptionEnvvarFirst {
		return sections
	}
	i := slices.Index(sections, theme.SectionEnvvar)
	if i < 0 || !slices.Contains(sections, theme.SectionHelp) {
		return sections
	}
	sections = slices.Delete(sections, i, i+1)
	return slices.Insert(sections, slices.Index(sections, theme.SectionHelp), theme.SectionEnvvar)
}

// arrange joins prefixes, body and suffixes with spaces, keeping the body's
// own line breaks.
func arrange(pre []string, body string, post []string) string {
	parts := make([]string, 0, len(pre)+len(post)+1)
	parts = append(parts, pre...)
	if body != "" {
		parts = append(parts, body)
	}
	parts = append(parts, post...)
	return strings.Join(parts, " ")
}

func paramSection(p *command.Parameter, sec theme.HelpSection, ctx Context) string {
	switch sec {
	case theme.SectionDeprecated:
		return deprecatedSection(p.Deprecated, ctx)
	case theme.SectionEnvvar:
		return envvarSection(p, ctx)
	case theme.SectionDefault:
		return defaultSection(p, ctx)
	case theme.SectionRequired:
		if p.Required {
			return ctx.Styles.RequiredLong.Render(ctx.Config.RequiredLongString)
		}
	case theme.SectionMetavar:
		if ctx.Config.AppendMetavarsHelp {
			if mv := MetavarText(p); mv != "" {
				return ctx.Styles.Metavar.Render(theme.Template(ctx.Config.AppendMetavarsHelpString, mv))
			}
		}
	}
	return ""
}

func deprecatedSection(d command.Deprecation, ctx Context) string {
	marker := ctx.Config.DeprecatedMarker(d)
	if marker == "" {
		return ""
	}
	return ctx.Styles.Deprecated.Render(marker)
}

func envvarSection(p *command.Parameter, ctx Context) string {
	names := Envvars(p, ctx.AutoEnvvarPrefix)
	if len(names) == 0 {
		return ""
	}
	return ctx.Styles.OptionEnvvar.Render(theme.Template(ctx.Config.EnvvarString, strings.Join(names, ctx.Config.EnvvarDelimiter)))
}

// Envvars returns the env-var names shown for p. Declared names win; an
// option that asks for its env var without declaring one gets
// PREFIX_NAME from the command's prefix.
func Envvars(p *command.Parameter, autoPrefix string) []string {
	if !p.ShowEnvvar {
		return nil
	}
	if len(p.Envvars) > 0 {
		return p.Envvars
	}
	if autoPrefix == "" || p.IsArgument() || p.Name == "" {
		return nil
	}
	name := strings.ToUpper(strings.ReplaceAll(p.Name, "-", "_"))
	return []string{strings.ToUpper(autoPrefix) + "_" + name}
}

func defaultSection(p *command.Parameter, ctx Context) string {
	value, ok := DefaultText(p, ctx.ShowDefault)
	if !ok {
		return ""
	}
	return ctx.Styles.OptionDefault.Render(theme.Template(ctx.Config.DefaultString, value))
}

// DefaultText decides whether p shows its default and formats it. A literal
// override always shows; otherwise the parameter's own setting wins over the
// command-level one. Empty values and false boolean flags are never shown.
func DefaultText(p *command.Parameter, inherited bool) (string, bool) {
	if p.DefaultText != "" {
		return p.DefaultText, true
	}
	show := inherited
	switch p.ShowDefault {
	case command.DefaultShow:
		show = true
	case command.DefaultHide:
		show = false
	}
	if !show || p.Default == nil {
		return "", false
	}

	if b, isBool := p.Default.(bool); isBool && p.IsBoolFlag() {
		if len(p.SecondaryOpts) > 0 {
			opts := p.Opts
			if !b {
				opts = p.SecondaryOpts
			}
			return strings.TrimLeft(preferLong(opts), "-"), true
		}
		if !b {
			return "", false
		}
	}

	s := formatValue(p.Default)
	return s, s != ""
}

func preferLong(opts []string) string {
	for _, o := range opts {
		if strings.HasPrefix(o, "--") {
			return o
		}
	}
	if len(opts) == 0 {
		return ""
	}
	return opts[0]
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return formatNumber(val)
	case float32:
		return formatNumber(float64(val))
	case time.Duration:
		return val.String()
	case fmt.Stringer:
		return val.String()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func:
		return "(dynamic)"
	case reflect.Slice, reflect.Array:
		if rv.Len() == 0 {
			return ""
		}
		items := make([]string, rv.Len())
		for i := range rv.Len() {
			items[i] = formatValue(rv.Index(i).Interface())
		}
		return strings.Join(items, ", ")
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return formatValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// ForCommand returns the cells of a subcommand row. The help column holds
// the short help (or the first paragraph of the help) with the deprecation
// marker placed by the commands help sections.
func ForCommand(n command.Node, types []theme.ColumnType, ctx Context) []string {
	info := n.Info()
	cells := make([]string, len(types))
	for i, ct := range types {
		switch ct {
		case theme.ColumnName:
			cells[i] = ctx.Styles.Command.Render(info.Name)
		case theme.ColumnAliases:
			if len(info.Aliases) > 0 {
				cells[i] = ctx.Styles.CommandAliases.Render(strings.Join(info.Aliases, ctx.Config.DelimiterComma+" "))
			}
		case theme.ColumnHelp:
			cells[i] = commandHelp(info, ctx)
		case theme.ColumnDeprecated:
			cells[i] = deprecatedSection(info.Deprecated, ctx)
		}
	}
	return cells
}

func commandHelp(info command.Info, ctx Context) string {
	short := info.ShortHelp
	if short == "" {
		short = textflow.FirstParagraph(info.Help)
	}
	var pre, post []string
	var body string
	seenHelp := false
	for _, sec := range ctx.Sections {
		switch sec {
		case theme.SectionHelp:
			seenHelp = true
			o := ctx.Flow
			o.Style, o.FirstStyle = ctx.Styles.CommandHelp, ctx.Styles.CommandHelp
			o.Deprecated = ""
			body = textflow.Render(short, o, " ")
		case theme.SectionDeprecated:
			if text := deprecatedSection(info.Deprecated, ctx); text != "" {
				if seenHelp {
					post = append(post, text)
				} else {
					pre = append(pre, text)
				}
			}
		}
	}
	return arrange(pre, body, post)
}
