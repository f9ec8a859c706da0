// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"github.com/invowk/richhelp/pkg/command"
)

type (
	// Config is the effective help configuration. Keys in the flat form are the
	// mapstructure tags. A resolved Config is never mutated.
	Config struct {
		StyleOption            string `mapstructure:"style_option"`
		StyleOptionNegative    string `mapstructure:"style_option_negative"`
		StyleArgument          string `mapstructure:"style_argument"`
		StyleCommand           string `mapstructure:"style_command"`
		StyleCommandAliases    string `mapstructure:"style_command_aliases"`
		StyleSwitch            string `mapstructure:"style_switch"`
		StyleSwitchNegative    string `mapstructure:"style_switch_negative"`
		StyleMetavar           string `mapstructure:"style_metavar"`
		StyleMetavarSeparator  string `mapstructure:"style_metavar_separator"`
		StyleRangeAppend       string `mapstructure:"style_range_append"`
		StyleUsage             string `mapstructure:"style_usage"`
		StyleUsageCommand      string `mapstructure:"style_usage_command"`
		StyleDeprecated        string `mapstructure:"style_deprecated"`
		StyleHelptextFirstLine string `mapstructure:"style_helptext_first_line"`
		StyleHelptext          string `mapstructure:"style_helptext"`
		StyleOptionHelp        string `mapstructure:"style_option_help"`
		StyleCommandHelp       string `mapstructure:"style_command_help"`
		StyleOptionDefault     string `mapstructure:"style_option_default"`
		StyleOptionEnvvar      string `mapstructure:"style_option_envvar"`
		StyleRequiredShort     string `mapstructure:"style_required_short"`
		StyleRequiredLong      string `mapstructure:"style_required_long"`
		StyleHeaderText        string `mapstructure:"style_header_text"`
		StyleEpilogText        string `mapstructure:"style_epilog_text"`
		StyleFooterText        string `mapstructure:"style_footer_text"`

		StyleOptionsPanelBorder      string `mapstructure:"style_options_panel_border"`
		StyleOptionsPanelBox         string `mapstructure:"style_options_panel_box"`
		StyleOptionsPanelTitleStyle  string `mapstructure:"style_options_panel_title_style"`
		StyleOptionsPanelHelpStyle   string `mapstructure:"style_options_panel_help_style"`
		StyleOptionsTableLeading     int    `mapstructure:"style_options_table_leading"`
		StyleOptionsTableShowLines   bool   `mapstructure:"style_options_table_show_lines"`
		StyleCommandsPanelBorder     string `mapstructure:"style_commands_panel_border"`
		StyleCommandsPanelBox        string `mapstructure:"style_commands_panel_box"`
		StyleCommandsPanelTitleStyle string `mapstructure:"style_commands_panel_title_style"`
		StyleCommandsPanelHelpStyle  string `mapstructure:"style_commands_panel_help_style"`
		StyleCommandsTableLeading    int    `mapstructure:"style_commands_table_leading"`
		StyleCommandsTableShowLines  bool   `mapstructure:"style_commands_table_show_lines"`
		StyleErrorsPanelBorder       string `mapstructure:"style_errors_panel_border"`
		StyleErrorsPanelBox          string `mapstructure:"style_errors_panel_box"`
		StyleErrorsSuggestion        string `mapstructure:"style_errors_suggestion"`
		StyleErrorsSuggestionCommand string `mapstructure:"style_errors_suggestion_command"`
		StyleAborted                 string `mapstructure:"style_aborted"`

		StyleTreeActive    string `mapstructure:"style_tree_active"`
		StyleTreeDimmed    string `mapstructure:"style_tree_dimmed"`
		StyleTreeGuide     string `mapstructure:"style_tree_guide"`
		StyleTreeTruncated string `mapstructure:"style_tree_truncated"`
		StyleTreeHeading   string `mapstructure:"style_tree_heading"`

		AlignOptionsPanel  string `mapstructure:"align_options_panel"`
		AlignCommandsPanel string `mapstructure:"align_commands_panel"`
		AlignErrorsPanel   string `mapstructure:"align_errors_panel"`

		Width         int    `mapstructure:"width"`
		MaxWidth      int    `mapstructure:"max_width"`
		ColorSystem   string `mapstructure:"color_system"`
		ForceTerminal *bool  `mapstructure:"force_terminal"`

		OptionsTableColumnTypes   []string `mapstructure:"options_table_column_types"`
		CommandsTableColumnTypes  []string `mapstructure:"commands_table_column_types"`
		OptionsTableHelpSections  []string `mapstructure:"options_table_help_sections"`
		CommandsTableHelpSections []string `mapstructure:"commands_table_help_sections"`

		HeaderText                 string `mapstructure:"header_text"`
		FooterText                 string `mapstructure:"footer_text"`
		UsageText                  string `mapstructure:"usage_text"`
		PanelInlineHelpInTitle     bool   `mapstructure:"panel_inline_help_in_title"`
		PanelInlineHelpDelimiter   string `mapstructure:"panel_inline_help_delimiter"`
		DeprecatedString           string `mapstructure:"deprecated_string"`
		DeprecatedWithReasonString string `mapstructure:"deprecated_with_reason_string"`
		DefaultString              string `mapstructure:"default_string"`
		EnvvarString               string `mapstructure:"envvar_string"`
		RequiredShortString        string `mapstructure:"required_short_string"`
		RequiredLongString         string `mapstructure:"required_long_string"`
		RangeString                string `mapstructure:"range_string"`
		AppendMetavarsHelpString   string `mapstructure:"append_metavars_help_string"`
		ArgumentsPanelTitle        string `mapstructure:"arguments_panel_title"`
		OptionsPanelTitle          string `mapstructure:"options_panel_title"`
		CommandsPanelTitle         string `mapstructure:"commands_panel_title"`
		ErrorsPanelTitle           string `mapstructure:"errors_panel_title"`
		DelimiterComma             string `mapstructure:"delimiter_comma"`
		DelimiterSlash             string `mapstructure:"delimiter_slash"`
		EnvvarDelimiter            string `mapstructure:"envvar_delimiter"`
		ErrorsSuggestion           string `mapstructure:"errors_suggestion"`
		ErrorsEpilogue             string `mapstructure:"errors_epilogue"`
		AbortedText                string `mapstructure:"aborted_text"`
		TreeHelpGap                int    `mapstructure:"tree_help_gap"`
		TreeMaxDepth               int    `mapstructure:"tree_max_depth"`

		ShowArguments         bool `mapstructure:"show_arguments"`
		ShowMetavarsColumn    bool `mapstructure:"show_metavars_column"`
		AppendMetavarsHelp    bool `mapstructure:"append_metavars_help"`
		GroupArgumentsOptions bool `mapstructure:"group_arguments_options"`
		OptionEnvvarFirst     bool `mapstructure:"option_envvar_first"`
		CommandsBeforeOptions bool `mapstructure:"commands_before_options"`
		ShortFlagsFirst       bool `mapstructure:"short_flags_first"`

		TextMarkup              TextMarkup `mapstructure:"text_markup"`
		TextEmojis              *bool      `mapstructure:"text_emojis"`
		TextParagraphLinebreaks string     `mapstructure:"text_paragraph_linebreaks"`
		UseMarkdown             *bool      `mapstructure:"use_markdown"`
		UseRichMarkup           *bool      `mapstructure:"use_rich_markup"`
		UseMarkdownEmoji        *bool      `mapstructure:"use_markdown_emoji"`

		Theme             string `mapstructure:"theme"`
		EnableThemeEnvVar bool   `mapstructure:"enable_theme_env_var"`

		OptionGroups  map[string][]GroupSpec         `mapstructure:"option_groups"`
		CommandGroups map[string][]GroupSpec         `mapstructure:"command_groups"`
		Panels        map[string][]command.PanelSpec `mapstructure:"panels"`

		// Highlighter colors option-like tokens in plain help text. Nil selects
		// the built-in option highlighter.
		Highlighter Highlighter `mapstructure:"-"`
	}

	// GroupSpec is one entry of the legacy option_groups / command_groups tables.
	GroupSpec struct {
		Name        string   `mapstructure:"name" json:"name" toml:"name"`
		Options     []string `mapstructure:"options" json:"options,omitempty" toml:"options,omitempty"`
		Commands    []string `mapstructure:"commands" json:"commands,omitempty" toml:"commands,omitempty"`
		Help        string   `mapstructure:"help" json:"help,omitempty" toml:"help,omitempty"`
		Box         string   `mapstructure:"box" json:"box,omitempty" toml:"box,omitempty"`
		BorderStyle string   `mapstructure:"border_style" json:"border_style,omitempty" toml:"border_style,omitempty"`
		TitleStyle  string   `mapstructure:"title_style" json:"title_style,omitempty" toml:"title_style,omitempty"`
	}
)

// Defaults returns the hard-coded library defaults.
func Defaults() Config {
	return Config{
		StyleOption:            "bold cyan",
		StyleArgument:          "bold cyan",
		StyleCommand:           "bold cyan",
		StyleCommandAliases:    "bold green",
		StyleSwitch:            "bold green",
		StyleMetavar:           "bold yellow",
		StyleMetavarSeparator:  "dim",
		StyleUsage:             "yellow",
		StyleUsageCommand:      "bold",
		StyleDeprecated:        "red",
		StyleHelptext:          "dim",
		StyleOptionDefault:     "dim",
		StyleOptionEnvvar:      "dim yellow",
		StyleRequiredShort:     "red",
		StyleRequiredLong:      "dim red",
		StyleEpilogText:        "",
		StyleHelptextFirstLine: "",

		StyleOptionsPanelBorder:      "dim",
		StyleOptionsPanelBox:         string(BoxRounded),
		StyleOptionsPanelHelpStyle:   "dim",
		StyleCommandsPanelBorder:     "dim",
		StyleCommandsPanelBox:        string(BoxRounded),
		StyleCommandsPanelHelpStyle:  "dim",
		StyleErrorsPanelBorder:       "red",
		StyleErrorsPanelBox:          string(BoxRounded),
		StyleErrorsSuggestion:        "dim",
		StyleErrorsSuggestionCommand: "blue",
		StyleAborted:                 "red",

		StyleTreeActive:    "bold",
		StyleTreeDimmed:    "dim",
		StyleTreeGuide:     "dim",
		StyleTreeTruncated: "dim italic",
		StyleTreeHeading:   "bold",

		AlignOptionsPanel:  "left",
		AlignCommandsPanel: "left",
		AlignErrorsPanel:   "left",

		ColorSystem: "auto",

		OptionsTableColumnTypes: []string{
			string(ColumnRequired), string(ColumnOptLong), string(ColumnOptShort),
			string(ColumnMetavar), string(ColumnHelp),
		},
		CommandsTableColumnTypes: []string{string(ColumnName), string(ColumnAliases), string(ColumnHelp)},
		OptionsTableHelpSections: []string{
			string(SectionDeprecated), string(SectionHelp), string(SectionEnvvar),
			string(SectionDefault), string(SectionRequired),
		},
		CommandsTableHelpSections: []string{string(SectionDeprecated), string(SectionHelp)},

		UsageText:                  "Usage:",
		PanelInlineHelpDelimiter:   " - ",
		DeprecatedString:           "[deprecated]",
		DeprecatedWithReasonString: "[deprecated: {}]",
		DefaultString:              "[default: {}]",
		EnvvarString:               "[env var: {}]",
		RequiredShortString:        "*",
		RequiredLongString:         "[required]",
		RangeString:                " [{}]",
		AppendMetavarsHelpString:   "[{}]",
		ArgumentsPanelTitle:        "Arguments",
		OptionsPanelTitle:          "Options",
		CommandsPanelTitle:         "Commands",
		ErrorsPanelTitle:           "Error",
		DelimiterComma:             ",",
		DelimiterSlash:             "/",
		EnvvarDelimiter:            ", ",
		AbortedText:                "Aborted.",
		TreeHelpGap:                2,
		TreeMaxDepth:               5,

		ShowMetavarsColumn: true,

		TextParagraphLinebreaks: "\n\n",
		EnableThemeEnvVar:       true,
	}
}

// Markup returns the active text mode. An unset mode is derived from the
// legacy toggles, markdown taking precedence over light markup.
func (c Config) Markup() TextMarkup {
	if c.TextMarkup != MarkupUnset {
		return c.TextMarkup
	}
	switch {
	case isTrue(c.UseMarkdown):
		return MarkupMarkdown
	case isTrue(c.UseRichMarkup):
		return MarkupRich
	default:
		return MarkupANSI
	}
}

// Emojis reports whether ":name:" codes are substituted. Unset defaults to on
// for markdown and light markup.
func (c Config) Emojis() bool {
	if c.TextEmojis != nil {
		return *c.TextEmojis
	}
	if c.UseMarkdownEmoji != nil {
		return *c.UseMarkdownEmoji
	}
	m := c.Markup()
	return m == MarkupMarkdown || m == MarkupRich
}

// DeprecatedMarker formats the deprecation token for d, or "" when not deprecated.
func (c Config) DeprecatedMarker(d command.Deprecation) string {
	if !d.Deprecated {
		return ""
	}
	if d.Reason != "" {
		return Template(c.DeprecatedWithReasonString, d.Reason)
	}
	return c.DeprecatedString
}

// Template substitutes the first "{}" in format with value. A format without a
// placeholder gets the value appended after a space.
func Template(format, value string) string {
	for i := 0; i+1 < len(format); i++ {
		if format[i] == '{' && format[i+1] == '}' {
			return format[:i] + value + format[i+2:]
		}
	}
	if format == "" {
		return value
	}
	return format + " " + value
}

func isTrue(b *bool) bool { return b != nil && *b }

// Bool returns a pointer to v, for the three-state fields.
func Bool(v bool) *bool { return &v }
