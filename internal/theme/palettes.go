// SPDX-License-Identifier: MPL-2.0

package theme

// Palette sets color-related style strings only.
type Palette map[string]any

// Format sets structural fields: boxes, column sets, fixed strings and spacing.
type Format map[string]any

func palette(option, argument, command, switchStyle, metavar, usage, border, errBorder, helptext string) Palette {
	return Palette{
		"style_option":                    option,
		"style_argument":                  argument,
		"style_command":                   command,
		"style_switch":                    switchStyle,
		"style_metavar":                   metavar,
		"style_usage":                     usage,
		"style_options_panel_border":      border,
		"style_commands_panel_border":     border,
		"style_errors_panel_border":       errBorder,
		"style_helptext":                  helptext,
		"style_errors_suggestion_command": option,
	}
}

var builtinPalettes = map[string]Palette{
	"default": {},
	"solarized": merge(
		palette("bold #268bd2", "bold #2aa198", "bold #268bd2", "bold #859900", "bold #b58900", "#cb4b16", "#586e75", "#dc322f", "#93a1a1"),
		Palette{"style_command_aliases": "bold #859900", "style_option_envvar": "#6c71c4", "style_required_short": "#dc322f", "style_required_long": "#dc322f"},
	),
	"nord": merge(
		palette("bold #88c0d0", "bold #8fbcbb", "bold #81a1c1", "bold #a3be8c", "bold #ebcb8b", "#b48ead", "#4c566a", "#bf616a", "#d8dee9"),
		Palette{"style_command_aliases": "bold #a3be8c", "style_option_envvar": "#5e81ac", "style_required_short": "#bf616a", "style_required_long": "#bf616a"},
	),
	"dracula": merge(
		palette("bold #8be9fd", "bold #bd93f9", "bold #ff79c6", "bold #50fa7b", "bold #f1fa8c", "#ffb86c", "#6272a4", "#ff5555", "#f8f8f2"),
		Palette{"style_command_aliases": "bold #50fa7b", "style_option_envvar": "#bd93f9", "style_required_short": "#ff5555", "style_required_long": "#ff5555"},
	),
	"forest": merge(
		palette("bold #8fbf5a", "bold #c2b280", "bold #6b8e23", "bold #d2b48c", "bold #deb887", "#a0522d", "#556b2f", "#b22222", "#9aa58a"),
		Palette{"style_command_aliases": "bold #d2b48c", "style_option_envvar": "#8b7d6b"},
	),
	"quartz": merge(
		palette("bold #e5a5c9", "bold #c9a5e5", "bold #f0c6da", "bold #a5e5d8", "bold #f5d6a0", "#d8a5e5", "#8a7a90", "#e57a8a", "#bfb3c6"),
		Palette{"style_command_aliases": "bold #a5e5d8"},
	),
	"cargo": merge(
		palette("bold cyan", "bold cyan", "bold cyan", "bold cyan", "cyan", "bold green", "dim", "bold red", ""),
		Palette{"style_usage_command": "bold cyan", "style_options_panel_title_style": "bold green", "style_commands_panel_title_style": "bold green"},
	),
	"star": merge(
		palette("bold #ffd700", "bold #ffa500", "bold #ffd700", "bold #fff8dc", "bold #ff8c00", "#ffd700", "#b8860b", "#ff4500", "#fffacd"),
		Palette{"style_command_aliases": "bold #fff8dc"},
	),
	"mono": merge(
		palette("bold", "bold", "bold", "bold", "italic", "bold", "dim", "bold", "dim"),
		Palette{
			"style_command_aliases": "bold", "style_option_envvar": "dim", "style_required_short": "bold",
			"style_required_long": "dim", "style_deprecated": "bold", "style_errors_suggestion_command": "bold",
		},
	),
	"plain": merge(
		palette("", "", "", "", "", "", "", "", ""),
		Palette{
			"style_command_aliases": "", "style_option_envvar": "", "style_required_short": "",
			"style_required_long": "", "style_deprecated": "", "style_option_default": "",
			"style_usage_command": "", "style_metavar_separator": "", "style_errors_suggestion": "",
			"style_aborted": "", "style_tree_dimmed": "", "style_tree_guide": "", "style_tree_truncated": "",
			"style_options_panel_help_style": "", "style_commands_panel_help_style": "",
		},
	),
}

var builtinFormats = map[string]Format{
	"box": {},
	"slim": {
		"style_options_panel_box":    string(BoxMinimal),
		"style_commands_panel_box":   string(BoxMinimal),
		"style_errors_panel_box":     string(BoxMinimal),
		"options_table_column_types": []string{"required", "opt_all", "metavar", "help"},
		"delimiter_comma":            ",",
	},
	"modern": {
		"style_options_panel_box":      string(BoxRounded),
		"style_commands_panel_box":     string(BoxRounded),
		"options_table_column_types":   []string{"required", "opt_all_metavar", "help"},
		"panel_inline_help_in_title":   true,
		"style_options_table_leading":  1,
		"style_commands_table_leading": 1,
	},
	"robo": {
		"style_options_panel_box":     string(BoxASCII),
		"style_commands_panel_box":    string(BoxASCII),
		"style_errors_panel_box":      string(BoxASCII),
		"options_table_column_types":  []string{"opt_long", "opt_short", "metavar", "help"},
		"required_long_string":        "(required)",
		"options_table_help_sections": []string{"deprecated", "help", "required", "envvar", "default"},
	},
	"nu": {
		"style_options_panel_box":        string(BoxHeavy),
		"style_commands_panel_box":       string(BoxHeavy),
		"style_errors_panel_box":         string(BoxHeavy),
		"options_table_column_types":     []string{"required", "opt_primary", "opt_secondary", "metavar", "help"},
		"commands_table_column_types":    []string{"name", "help"},
		"show_arguments":                 true,
		"panel_inline_help_in_title":     true,
		"style_options_table_show_lines": true,
	},
}

func merge(p, extra Palette) Palette {
	out := make(Palette, len(p)+len(extra))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
