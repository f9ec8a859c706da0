// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the style strings of a Config compiled against one renderer.
type Styles struct {
	r *lipgloss.Renderer

	Option, OptionNegative      lipgloss.Style
	Switch, SwitchNegative      lipgloss.Style
	Argument                    lipgloss.Style
	Command, CommandAliases     lipgloss.Style
	Metavar, MetavarSeparator   lipgloss.Style
	RangeAppend                 lipgloss.Style
	Usage, UsageCommand         lipgloss.Style
	Deprecated                  lipgloss.Style
	Helptext, HelptextFirst     lipgloss.Style
	OptionHelp, CommandHelp     lipgloss.Style
	OptionDefault               lipgloss.Style
	OptionEnvvar                lipgloss.Style
	RequiredShort, RequiredLong lipgloss.Style
	HeaderText, EpilogText      lipgloss.Style
	FooterText                  lipgloss.Style

	OptionsPanelBorder, OptionsPanelTitle, OptionsPanelHelp    lipgloss.Style
	CommandsPanelBorder, CommandsPanelTitle, CommandsPanelHelp lipgloss.Style
	ErrorsPanelBorder                                          lipgloss.Style
	ErrorsSuggestion, ErrorsSuggestionCommand                  lipgloss.Style
	Aborted                                                    lipgloss.Style

	TreeActive, TreeDimmed, TreeGuide, TreeTruncated, TreeHeading lipgloss.Style
}

// Compile parses every style string of c for renderer r. Unknown tokens are
// reported once per style through the warning logger.
func Compile(c Config, r *lipgloss.Renderer) Styles {
	p := func(spec string) lipgloss.Style {
		st, err := ParseStyle(r, spec)
		if err != nil {
			logger.Warn("ignoring unknown style tokens", "err", err)
		}
		return st
	}
	orElse := func(spec, fallback string) lipgloss.Style {
		if spec == "" {
			return p(fallback)
		}
		return p(spec)
	}

	return Styles{
		r:                       r,
		Option:                  p(c.StyleOption),
		OptionNegative:          orElse(c.StyleOptionNegative, c.StyleOption),
		Switch:                  p(c.StyleSwitch),
		SwitchNegative:          orElse(c.StyleSwitchNegative, c.StyleSwitch),
		Argument:                p(c.StyleArgument),
		Command:                 p(c.StyleCommand),
		CommandAliases:          p(c.StyleCommandAliases),
		Metavar:                 p(c.StyleMetavar),
		MetavarSeparator:        p(c.StyleMetavarSeparator),
		RangeAppend:             orElse(c.StyleRangeAppend, c.StyleMetavar),
		Usage:                   p(c.StyleUsage),
		UsageCommand:            p(c.StyleUsageCommand),
		Deprecated:              p(c.StyleDeprecated),
		Helptext:                p(c.StyleHelptext),
		HelptextFirst:           p(c.StyleHelptextFirstLine),
		OptionHelp:              p(c.StyleOptionHelp),
		CommandHelp:             p(c.StyleCommandHelp),
		OptionDefault:           p(c.StyleOptionDefault),
		OptionEnvvar:            p(c.StyleOptionEnvvar),
		RequiredShort:           p(c.StyleRequiredShort),
		RequiredLong:            p(c.StyleRequiredLong),
		HeaderText:              p(c.StyleHeaderText),
		EpilogText:              p(c.StyleEpilogText),
		FooterText:              p(c.StyleFooterText),
		OptionsPanelBorder:      p(c.StyleOptionsPanelBorder),
		OptionsPanelTitle:       p(c.StyleOptionsPanelTitleStyle),
		OptionsPanelHelp:        p(c.StyleOptionsPanelHelpStyle),
		CommandsPanelBorder:     p(c.StyleCommandsPanelBorder),
		CommandsPanelTitle:      p(c.StyleCommandsPanelTitleStyle),
		CommandsPanelHelp:       p(c.StyleCommandsPanelHelpStyle),
		ErrorsPanelBorder:       p(c.StyleErrorsPanelBorder),
		ErrorsSuggestion:        p(c.StyleErrorsSuggestion),
		ErrorsSuggestionCommand: p(c.StyleErrorsSuggestionCommand),
		Aborted:                 p(c.StyleAborted),
		TreeActive:              p(c.StyleTreeActive),
		TreeDimmed:              p(c.StyleTreeDimmed),
		TreeGuide:               p(c.StyleTreeGuide),
		TreeTruncated:           p(c.StyleTreeTruncated),
		TreeHeading:             p(c.StyleTreeHeading),
	}
}

// Parse compiles an ad-hoc style string (panel overrides, markup tags) on the
// same renderer. An empty spec yields fallback.
func (s Styles) Parse(spec string, fallback lipgloss.Style) lipgloss.Style {
	if spec == "" {
		return fallback
	}
	st, err := ParseStyle(s.r, spec)
	if err != nil {
		logger.Warn("ignoring unknown style tokens", "err", err)
	}
	return st
}

// Renderer returns the renderer the styles were compiled for.
func (s Styles) Renderer() *lipgloss.Renderer { return s.r }
