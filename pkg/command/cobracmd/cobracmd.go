// SPDX-License-Identifier: MPL-2.0

// Package cobracmd presents a *cobra.Command tree as command.Node values so
// the help engine can render programs built on cobra and pflag.
//
// Cobra has no notion of declared positional arguments, panels or env-vars.
// Arguments are read from the Use line ("cp SRC [DEST]..."), and the rest is
// carried by annotations on commands and flags:
//
//	cmd.Annotations[cobracmd.AnnotationTree] = "true"
//	_ = cmd.Flags().SetAnnotation("token", cobracmd.AnnotationEnvvar, []string{"API_TOKEN"})
package cobracmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/invowk/richhelp/pkg/command"
)

// Annotation keys understood on commands (cobra.Command.Annotations) and
// flags (pflag.Flag.Annotations).
const (
	// AnnotationEpilog is the command text printed after the panels.
	AnnotationEpilog = "richhelp_epilog"
	// AnnotationTree selects the tree view when set to "true".
	AnnotationTree = "richhelp_tree"
	// AnnotationEnvvarPrefix sets the prefix env-var names are derived from.
	AnnotationEnvvarPrefix = "richhelp_envvar_prefix"
	// AnnotationShowDefaults hides flag defaults when set to "false".
	AnnotationShowDefaults = "richhelp_show_defaults"
	// AnnotationPanel names the panel a flag is listed in.
	AnnotationPanel = "richhelp_panel"
	// AnnotationEnvvar lists the env-vars a flag is read from.
	AnnotationEnvvar = "richhelp_envvar"
)

// GlobalFlagsPanel holds the persistent flags inherited from parents.
const GlobalFlagsPanel = "Global Flags"

// Node adapts one cobra command.
type Node struct {
	cmd *cobra.Command
}

var _ command.Node = (*Node)(nil)

// Wrap adapts c.
func Wrap(c *cobra.Command) *Node {
	return &Node{cmd: c}
}

// Path returns the names leading from the root of c's tree to c, excluding
// the root itself.
func Path(c *cobra.Command) []string {
	var names []string
	for cur := c; cur.HasParent(); cur = cur.Parent() {
		names = append(names, cur.Name())
	}
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return names
}

// Command returns the wrapped cobra command.
func (n *Node) Command() *cobra.Command { return n.cmd }

// Info implements command.Node.
func (n *Node) Info() command.Info {
	c := n.cmd
	info := command.Info{
		Name:             c.Name(),
		Help:             c.Long,
		ShortHelp:        c.Short,
		Epilog:           c.Annotations[AnnotationEpilog],
		Aliases:          c.Aliases,
		Hidden:           c.Hidden,
		Panel:            c.GroupID,
		Group:            c.HasAvailableSubCommands(),
		ShowDefault:      c.Annotations[AnnotationShowDefaults] != "false",
		AutoEnvvarPrefix: c.Annotations[AnnotationEnvvarPrefix],
		TreeHelp:         c.Annotations[AnnotationTree] == "true",
	}
	if info.Help == "" {
		info.Help = c.Short
	}
	if info.Epilog == "" && c.Example != "" {
		info.Epilog = c.Example
	}
	if c.Deprecated != "" {
		info.Deprecated = command.Deprecation{Deprecated: true, Reason: c.Deprecated}
	}

	for _, g := range c.Groups() {
		info.Panels = append(info.Panels, command.PanelSpec{
			Name:  g.ID,
			Title: strings.TrimSuffix(strings.TrimSpace(g.Title), ":"),
			Kind:  command.PanelCommands,
		})
	}
	if c.HasAvailableInheritedFlags() {
		info.Panels = append(info.Panels, command.PanelSpec{Name: GlobalFlagsPanel, Implicit: true})
	}
	return info
}

// Parameters implements command.Node: arguments from the Use line, then the
// command's own flags, then the flags inherited from its parents.
func (n *Node) Parameters() []*command.Parameter {
	c := n.cmd
	c.InitDefaultHelpFlag()

	params := UseArguments(c.Use)
	c.LocalFlags().VisitAll(func(f *pflag.Flag) {
		params = append(params, Parameter(f, ""))
	})
	c.InheritedFlags().VisitAll(func(f *pflag.Flag) {
		params = append(params, Parameter(f, GlobalFlagsPanel))
	})
	return params
}

// Children implements command.Node. Cobra's generated help command and
// non-runnable help topics are left out; hidden and deprecated commands are
// kept so the engine can apply its own rules to them.
func (n *Node) Children() []command.Node {
	var nodes []command.Node
	for _, sub := range n.cmd.Commands() {
		if !sub.IsAvailableCommand() && !sub.Hidden && sub.Deprecated == "" {
			continue
		}
		nodes = append(nodes, Wrap(sub))
	}
	return nodes
}

// UseArguments reads positional arguments from a cobra Use line. "[flags]" and
// "[command]" are skipped; brackets make an argument optional and a trailing
// ellipsis makes it variadic.
func UseArguments(use string) []*command.Parameter {
	fields := strings.Fields(use)
	if len(fields) < 2 {
		return nil
	}
	var params []*command.Parameter
	for _, tok := range fields[1:] {
		variadic := strings.HasSuffix(tok, "...")
		tok = strings.TrimSuffix(tok, "...")
		required := true
		if strings.HasPrefix(tok, "[") && strings.HasSuffix(tok, "]") {
			required = false
			tok = tok[1 : len(tok)-1]
		}
		lower := strings.ToLower(tok)
		if tok == "" || lower == "flags" || lower == "command" || lower == "options" {
			continue
		}
		p := &command.Parameter{
			Kind:     command.KindArgument,
			Name:     strings.ToLower(strings.ReplaceAll(tok, "-", "_")),
			Metavar:  tok,
			Required: required,
			Nargs:    1,
			Type:     command.ParamType{Name: command.TypeText},
		}
		if variadic {
			p.Nargs = -1
		}
		params = append(params, p)
	}
	return params
}

// Parameter converts a pflag flag. panel applies when the flag carries no
// panel annotation of its own.
func Parameter(f *pflag.Flag, panel string) *command.Parameter {
	p := &command.Parameter{
		Kind:   command.KindOption,
		Name:   f.Name,
		Opts:   []string{"--" + f.Name},
		Nargs:  1,
		Hidden: f.Hidden,
		Panel:  panel,
	}
	if f.Shorthand != "" {
		p.Opts = append(p.Opts, "-"+f.Shorthand)
	}

	name, usage := pflag.UnquoteUsage(f)
	p.Help = usage
	if name != "" && strings.Contains(f.Usage, "`") {
		p.Metavar = strings.ToUpper(name)
	}

	typ := f.Value.Type()
	switch {
	case typ == "bool":
		p.IsFlag = true
		p.Type = command.ParamType{Name: command.TypeBoolean}
		p.Default = f.DefValue == "true"
	case typ == "count":
		p.Count = true
		p.IsFlag = true
		zero := 0.0
		p.Type = command.ParamType{Name: command.TypeInteger, Min: &zero}
	default:
		p.Type = command.ParamType{Name: typeName(typ)}
		if strings.HasSuffix(typ, "Slice") || strings.HasSuffix(typ, "Array") {
			p.Multiple = true
		}
		if !isZeroDefault(f.DefValue) {
			p.Default = f.DefValue
		}
	}
	if f.Deprecated != "" {
		p.Deprecated = command.Deprecation{Deprecated: true, Reason: f.Deprecated}
	}
	if vals := f.Annotations[cobra.BashCompOneRequiredFlag]; len(vals) > 0 && vals[0] == "true" {
		p.Required = true
	}
	if vals := f.Annotations[AnnotationPanel]; len(vals) > 0 {
		p.Panel = vals[0]
	}
	if vals := f.Annotations[AnnotationEnvvar]; len(vals) > 0 {
		p.Envvars = vals
		p.ShowEnvvar = true
	}
	if f.Name == "help" {
		p.HelpOption = true
		p.Default = nil
	}
	return p
}

func typeName(pflagType string) string {
	switch strings.TrimSuffix(strings.TrimSuffix(pflagType, "Slice"), "Array") {
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		return command.TypeInteger
	case "float32", "float64":
		return command.TypeFloat
	case "duration":
		return command.TypeDuration
	case "string":
		return command.TypeText
	default:
		return pflagType
	}
}

// isZeroDefault mirrors pflag's rule for omitting a default from usage.
func isZeroDefault(v string) bool {
	switch v {
	case "", "0", "0s", "false", "[]", "<nil>":
		return true
	}
	return false
}
