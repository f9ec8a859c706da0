// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"
)

type (
	// Builder declares a Command fluently. Parameters and subcommands keep the
	// order of the calls that added them.
	Builder struct {
		cmd *Command
	}

	// ParamOption configures a Parameter added through the Builder.
	ParamOption func(*Parameter)
)

// New starts a command declaration.
func New(name string) *Builder {
	return &Builder{cmd: &Command{Meta: Info{Name: name}}}
}

// Build returns the declared command.
func (b *Builder) Build() *Command { return b.cmd }

// Help sets the long help text.
func (b *Builder) Help(text string) *Builder {
	b.cmd.Meta.Help = text
	return b
}

// Short sets the short help used in command listings.
func (b *Builder) Short(text string) *Builder {
	b.cmd.Meta.ShortHelp = text
	return b
}

// Epilog sets text rendered after the panels.
func (b *Builder) Epilog(text string) *Builder {
	b.cmd.Meta.Epilog = text
	return b
}

// Alias adds alternative names.
func (b *Builder) Alias(names ...string) *Builder {
	b.cmd.Meta.Aliases = append(b.cmd.Meta.Aliases, names...)
	return b
}

// Deprecate marks the command deprecated. An empty reason renders the plain marker.
func (b *Builder) Deprecate(reason string) *Builder {
	b.cmd.Meta.Deprecated = Deprecation{Deprecated: true, Reason: reason}
	return b
}

// Hide excludes the command from its parent's listings.
func (b *Builder) Hide() *Builder {
	b.cmd.Meta.Hidden = true
	return b
}

// InPanel lists the command in the named command panel of its parent.
func (b *Builder) InPanel(name string) *Builder {
	b.cmd.Meta.Panel = name
	return b
}

// ShowDefaults displays defaults for every parameter that does not opt out.
func (b *Builder) ShowDefaults() *Builder {
	b.cmd.Meta.ShowDefault = true
	return b
}

// EnvvarPrefix sets the prefix used to derive env-var names.
func (b *Builder) EnvvarPrefix(prefix string) *Builder {
	b.cmd.Meta.AutoEnvvarPrefix = prefix
	return b
}

// Tree selects the tree help view.
func (b *Builder) Tree() *Builder {
	b.cmd.Meta.TreeHelp = true
	return b
}

// Group marks the command as accepting subcommands even before any are added.
func (b *Builder) Group() *Builder {
	b.cmd.Meta.Group = true
	return b
}

// Panel declares a panel. The kind defaults to parameters.
func (b *Builder) Panel(spec PanelSpec) *Builder {
	if spec.Kind == "" {
		spec.Kind = PanelParams
	}
	b.cmd.Meta.Panels = append(b.cmd.Meta.Panels, spec)
	return b
}

// CommandPanel declares a panel of subcommands.
func (b *Builder) CommandPanel(spec PanelSpec) *Builder {
	spec.Kind = PanelCommands
	b.cmd.Meta.Panels = append(b.cmd.Meta.Panels, spec)
	return b
}

// Arg adds a positional argument. Arguments are required unless Optional is given.
func (b *Builder) Arg(name string, opts ...ParamOption) *Builder {
	p := &Parameter{Kind: KindArgument, Name: name, Required: true, Nargs: 1, Type: ParamType{Name: TypeText}}
	for _, opt := range opts {
		opt(p)
	}
	b.cmd.Params = append(b.cmd.Params, p)
	return b
}

// Option adds a value option. decl lists invocation strings separated by commas
// or spaces; a slash introduces negating forms ("--shout/--no-shout").
func (b *Builder) Option(decl string, opts ...ParamOption) *Builder {
	p := &Parameter{Kind: KindOption, Nargs: 1, Type: ParamType{Name: TypeText}}
	p.Opts, p.SecondaryOpts = parseDecl(decl)
	p.Name = nameFromOpts(p.Opts)
	if len(p.SecondaryOpts) > 0 {
		p.IsFlag = true
		p.Type = ParamType{Name: TypeBoolean}
	}
	for _, opt := range opts {
		opt(p)
	}
	b.cmd.Params = append(b.cmd.Params, p)
	return b
}

// Flag adds a boolean switch.
func (b *Builder) Flag(decl string, opts ...ParamOption) *Builder {
	return b.Option(decl, append([]ParamOption{asFlag}, opts...)...)
}

// HelpOption adds the conventional --help switch.
func (b *Builder) HelpOption() *Builder {
	return b.Flag("--help", WithHelp("Show this message and exit."), func(p *Parameter) { p.HelpOption = true })
}

// Sub adds subcommands in order.
func (b *Builder) Sub(children ...*Builder) *Builder {
	for _, c := range children {
		b.cmd.Subcommands = append(b.cmd.Subcommands, c.cmd)
	}
	b.cmd.Meta.Group = true
	return b
}

func asFlag(p *Parameter) {
	p.IsFlag = true
	p.Type = ParamType{Name: TypeBoolean}
	if p.Default == nil {
		p.Default = false
	}
}

// parseDecl splits "--shout/--no-shout, -s" into primary and secondary forms.
func parseDecl(decl string) (primary, secondary []string) {
	fields := strings.FieldsFunc(decl, func(r rune) bool { return r == ',' || r == ' ' })
	for _, f := range fields {
		first, second, found := strings.Cut(f, "/")
		if first != "" {
			primary = append(primary, first)
		}
		if found && second != "" {
			secondary = append(secondary, second)
		}
	}
	return primary, secondary
}

// WithHelp sets the help text.
func WithHelp(text string) ParamOption { return func(p *Parameter) { p.Help = text } }

// WithName overrides the derived parameter name.
func WithName(name string) ParamOption { return func(p *Parameter) { p.Name = name } }

// WithMetavar overrides the value placeholder.
func WithMetavar(m string) ParamOption { return func(p *Parameter) { p.Metavar = m } }

// WithType sets the value type.
func WithType(t ParamType) ParamOption { return func(p *Parameter) { p.Type = t } }

// WithChoices restricts values to a fixed set.
func WithChoices(choices ...string) ParamOption {
	return func(p *Parameter) { p.Type = ParamType{Name: TypeChoice, Choices: choices} }
}

// WithRange sets an integer type bounded by min and max; nil leaves a side open.
func WithRange(minV, maxV *float64) ParamOption {
	return func(p *Parameter) {
		if p.Type.Name == "" || p.Type.Name == TypeText {
			p.Type.Name = TypeInteger
		}
		p.Type.Min, p.Type.Max = minV, maxV
	}
}

// WithDefault sets the default value.
func WithDefault(v any) ParamOption { return func(p *Parameter) { p.Default = v } }

// ShowDefault always renders the default.
func ShowDefault() ParamOption { return func(p *Parameter) { p.ShowDefault = DefaultShow } }

// HideDefault never renders the default.
func HideDefault() ParamOption { return func(p *Parameter) { p.ShowDefault = DefaultHide } }

// DefaultText renders text in place of the default value.
func DefaultText(text string) ParamOption { return func(p *Parameter) { p.DefaultText = text } }

// Required marks the parameter as required.
func Required() ParamOption { return func(p *Parameter) { p.Required = true } }

// Optional marks an argument as optional.
func Optional() ParamOption { return func(p *Parameter) { p.Required = false } }

// Hidden excludes the parameter from help.
func Hidden() ParamOption { return func(p *Parameter) { p.Hidden = true } }

// Deprecated marks the parameter deprecated.
func Deprecated(reason string) ParamOption {
	return func(p *Parameter) { p.Deprecated = Deprecation{Deprecated: true, Reason: reason} }
}

// Envvar names the environment variables read for the parameter and shows them.
func Envvar(names ...string) ParamOption {
	return func(p *Parameter) {
		p.Envvars = append(p.Envvars, names...)
		p.ShowEnvvar = true
	}
}

// ShowEnvvar shows the env-var, derived from the command prefix when none is named.
func ShowEnvvar() ParamOption { return func(p *Parameter) { p.ShowEnvvar = true } }

// Counter makes the option count its occurrences ("-vvv").
func Counter() ParamOption {
	return func(p *Parameter) {
		p.Count = true
		p.IsFlag = true
		zero := 0.0
		p.Type = ParamType{Name: TypeInteger, Min: &zero}
		if p.Default == nil {
			p.Default = 0
		}
	}
}

// Multiple lets the option repeat.
func Multiple() ParamOption { return func(p *Parameter) { p.Multiple = true } }

// Variadic lets an argument consume any number of values.
func Variadic() ParamOption { return func(p *Parameter) { p.Nargs = -1 } }

// InPanel lists the parameter in the named panel.
func InPanel(name string) ParamOption { return func(p *Parameter) { p.Panel = name } }

// Float64 returns a pointer to v, for range bounds.
func Float64(v float64) *float64 { return &v }
