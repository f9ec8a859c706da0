// SPDX-License-Identifier: MPL-2.0

package command

import (
	"strings"
)

// Well-known parameter type names.
const (
	TypeText     = "text"
	TypeInteger  = "integer"
	TypeFloat    = "float"
	TypeBoolean  = "boolean"
	TypePath     = "path"
	TypeFile     = "filename"
	TypeChoice   = "choice"
	TypeDuration = "duration"
)

type (
	// Parameter describes one argument or option.
	Parameter struct {
		Kind Kind
		Name string
		// Opts are the primary invocation strings ("--env", "-e").
		Opts []string
		// SecondaryOpts are negating forms ("--no-shout").
		SecondaryOpts []string

		Help    string
		Metavar string
		Type    ParamType

		Default     any
		ShowDefault DefaultDisplay
		// DefaultText replaces the rendered default and implies DefaultShow.
		DefaultText string

		Required   bool
		Hidden     bool
		Deprecated Deprecation

		Envvars    []string
		ShowEnvvar bool

		IsFlag   bool
		Count    bool
		Multiple bool
		// Nargs is the number of values consumed; negative means variadic.
		Nargs int

		// Panel names the parameter panel this parameter is listed in.
		Panel string
		// HelpOption marks the option that prints help.
		HelpOption bool
	}

	// ParamType describes the value type of a parameter.
	ParamType struct {
		Name    string
		Metavar string
		Choices []string

		Min, Max         *float64
		MinOpen, MaxOpen bool
		Clamp            bool
	}
)

// IsArgument reports whether the parameter is positional.
func (p *Parameter) IsArgument() bool { return p.Kind == KindArgument }

// IsBoolFlag reports whether the parameter is an on/off switch that takes no value.
func (p *Parameter) IsBoolFlag() bool {
	return p.IsFlag && (p.Type.Name == "" || p.Type.Name == TypeBoolean) && !p.Count
}

// Label is the display name of an argument: the metavar override or the upper-cased name.
func (p *Parameter) Label() string {
	if p.Metavar != "" {
		return p.Metavar
	}
	return strings.ToUpper(p.Name)
}

// Matches reports whether ref identifies this parameter by name, invocation string or label.
func (p *Parameter) Matches(ref string) bool {
	if ref == "" {
		return false
	}
	if ref == p.Name {
		return true
	}
	for _, o := range p.Opts {
		if o == ref {
			return true
		}
	}
	for _, o := range p.SecondaryOpts {
		if o == ref {
			return true
		}
	}
	if p.IsArgument() && ref == p.Label() {
		return true
	}
	return normalizeName(ref) == normalizeName(p.Name)
}

// HasRange reports whether the type carries a numeric bound.
func (t ParamType) HasRange() bool { return t.Min != nil || t.Max != nil }

// InfoOf returns the info of a node that may be nil.
func InfoOf(n Node) Info {
	if n == nil {
		return Info{}
	}
	return n.Info()
}

// Matches reports whether ref names the command or one of its aliases.
func (i Info) Matches(ref string) bool {
	if ref == i.Name {
		return true
	}
	for _, a := range i.Aliases {
		if a == ref {
			return true
		}
	}
	return false
}

// normalizeName maps "--log-level", "log_level" and "LOG-LEVEL" to the same key.
func normalizeName(s string) string {
	s = strings.TrimLeft(s, "-")
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ToLower(s)
}

// nameFromOpts derives a parameter name from its invocation strings: the longest
// long form without dashes, falling back to the first short form.
func nameFromOpts(opts []string) string {
	best := ""
	for _, o := range opts {
		if strings.HasPrefix(o, "--") && len(o) > len(best) {
			best = o
		}
	}
	if best == "" && len(opts) > 0 {
		best = opts[0]
	}
	return normalizeName(best)
}
