// SPDX-License-Identifier: MPL-2.0

// Package config loads the help configuration from files and the environment
// using Viper.
//
// The file is looked up as config.{cue,toml,yaml,yml,json} in the richhelp
// configuration directory ($XDG_CONFIG_HOME/richhelp on Linux,
// ~/Library/Application Support/richhelp on macOS, %APPDATA%\richhelp on
// Windows), then in the working directory. Every file is validated against the
// embedded CUE schema (config_schema.cue) whatever its format, so a typo in a
// key or an unknown box style is reported with its path instead of being
// ignored.
//
// Each flat key can also be set from the environment as RICHHELP_<KEY>, for
// example RICHHELP_WIDTH=100. RICHHELP_THEME is left to the theme resolver,
// which honors it only when enable_theme_env_var is on.
package config
