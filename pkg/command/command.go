// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"
)

const (
	// KindArgument is a positional argument.
	KindArgument Kind = "argument"
	// KindOption is a named option or switch.
	KindOption Kind = "option"

	// PanelParams holds arguments and options.
	PanelParams PanelKind = "params"
	// PanelCommands holds subcommands.
	PanelCommands PanelKind = "commands"

	// DefaultInherit follows the command's ShowDefault setting (zero value).
	DefaultInherit DefaultDisplay = ""
	// DefaultShow always displays the default value.
	DefaultShow DefaultDisplay = "show"
	// DefaultHide never displays the default value.
	DefaultHide DefaultDisplay = "hide"
)

type (
	// Kind distinguishes arguments from options.
	Kind string

	// PanelKind selects which of the two independent panel sequences a panel belongs to.
	PanelKind string

	// DefaultDisplay controls whether a parameter's default is rendered.
	DefaultDisplay string

	// Deprecation marks a command or parameter as deprecated, optionally with a reason.
	Deprecation struct {
		Deprecated bool
		Reason     string
	}

	// Info is the scalar metadata of a command.
	Info struct {
		Name      string
		Help      string
		ShortHelp string
		Epilog    string
		Aliases   []string

		Deprecated Deprecation
		Hidden     bool

		// Panel names the command panel of the parent this command is listed in.
		Panel string
		// Panels declares panels for this command's parameters and subcommands.
		Panels []PanelSpec

		// Group is true for commands that accept subcommands.
		Group bool
		// ShowDefault is the context default for parameters with DefaultInherit.
		ShowDefault bool
		// AutoEnvvarPrefix derives env-var names for options with ShowEnvvar set.
		AutoEnvvarPrefix string
		// TreeHelp selects the tree view instead of panels.
		TreeHelp bool

		// OptionsMetavar replaces "[OPTIONS]" in the usage line when set.
		OptionsMetavar string
		// SubcommandMetavar replaces "COMMAND [ARGS]..." in the usage line when set.
		SubcommandMetavar string
	}

	// Node is the capability the help engine needs from a command.
	Node interface {
		Info() Info
		Parameters() []*Parameter
		Children() []Node
	}

	// Command is the reference Node implementation.
	Command struct {
		Meta        Info
		Params      []*Parameter
		Subcommands []*Command
	}

	// PanelSpec declares a titled panel of parameters or subcommands.
	PanelSpec struct {
		Name    string    `mapstructure:"name" json:"name" toml:"name"`
		Title   string    `mapstructure:"title" json:"title,omitempty" toml:"title,omitempty"`
		Kind    PanelKind `mapstructure:"kind" json:"kind,omitempty" toml:"kind,omitempty"`
		Members []string  `mapstructure:"members" json:"members,omitempty" toml:"members,omitempty"`
		Help    string    `mapstructure:"help" json:"help,omitempty" toml:"help,omitempty"`

		Box         string   `mapstructure:"box" json:"box,omitempty" toml:"box,omitempty"`
		BorderStyle string   `mapstructure:"border_style" json:"border_style,omitempty" toml:"border_style,omitempty"`
		TitleStyle  string   `mapstructure:"title_style" json:"title_style,omitempty" toml:"title_style,omitempty"`
		HelpStyle   string   `mapstructure:"help_style" json:"help_style,omitempty" toml:"help_style,omitempty"`
		Align       string   `mapstructure:"align" json:"align,omitempty" toml:"align,omitempty"`
		ColumnTypes []string `mapstructure:"column_types" json:"column_types,omitempty" toml:"column_types,omitempty"`

		InlineHelpInTitle *bool `mapstructure:"inline_help_in_title" json:"inline_help_in_title,omitempty" toml:"inline_help_in_title,omitempty"`

		// Implicit marks a panel the host adapter adds on its own. It does
		// not count as declared for commands_before_options.
		Implicit bool `mapstructure:"-" json:"-" toml:"-"`
	}
)

// Info implements Node.
func (c *Command) Info() Info {
	info := c.Meta
	if len(c.Subcommands) > 0 {
		info.Group = true
	}
	return info
}

// Parameters implements Node.
func (c *Command) Parameters() []*Parameter { return c.Params }

// Children implements Node.
func (c *Command) Children() []Node {
	nodes := make([]Node, 0, len(c.Subcommands))
	for _, sub := range c.Subcommands {
		nodes = append(nodes, sub)
	}
	return nodes
}

// Sub returns the direct subcommand with the given name or alias.
func (c *Command) Sub(name string) *Command {
	for _, sub := range c.Subcommands {
		if sub.Meta.Name == name {
			return sub
		}
		for _, alias := range sub.Meta.Aliases {
			if alias == name {
				return sub
			}
		}
	}
	return nil
}

// DisplayTitle returns Title when set, otherwise Name.
func (s PanelSpec) DisplayTitle() string {
	if s.Title != "" {
		return s.Title
	}
	return s.Name
}

// Message returns the deprecation reason or an empty string.
func (d Deprecation) Message() string {
	if !d.Deprecated {
		return ""
	}
	return d.Reason
}

// Lookup resolves a sequence of subcommand names starting at root and returns the
// chain of nodes from root to the last match. Unknown names stop the walk.
func Lookup(root Node, names ...string) []Node {
	chain := []Node{root}
	cur := root
	for _, name := range names {
		next := child(cur, name)
		if next == nil {
			break
		}
		chain = append(chain, next)
		cur = next
	}
	return chain
}

func child(n Node, name string) Node {
	for _, c := range n.Children() {
		info := c.Info()
		if info.Name == name {
			return c
		}
		for _, alias := range info.Aliases {
			if alias == name {
				return c
			}
		}
	}
	return nil
}

// PathString joins the names of a command chain with spaces.
func PathString(chain []Node) string {
	names := make([]string, 0, len(chain))
	for _, n := range chain {
		names = append(names, n.Info().Name)
	}
	return strings.Join(names, " ")
}
