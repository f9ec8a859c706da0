// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/internal/config"
	"github.com/invowk/richhelp/internal/textflow"
	"github.com/invowk/richhelp/pkg/richhelp"
)

// newConfigCommand creates the `richhelp config` command tree.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage richhelp configuration",
		Long: "Manage richhelp configuration.\n\n" +
			"Configuration is read from config.cue, config.toml, config.yaml or\n" +
			"config.json in the configuration directory, then in the working directory:\n\n" +
			textflow.PreserveMarker + "\n" +
			"  - Linux: ~/.config/richhelp/\n" +
			"  - macOS: ~/Library/Application Support/richhelp/\n" +
			"  - Windows: %APPDATA%\\richhelp\\\n\n" +
			"Any key can also be set from the environment as RICHHELP_<KEY>.",
		GroupID: groupSetup,
	}

	var (
		format   string
		resolved bool
	)
	show := &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		Long: `Show the effective configuration: library defaults, then the
configuration file, then the environment. With --resolved the selected
theme and the global flags are applied as well.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfig(cmd.OutOrStdout(), config.FileFormat(format), resolved)
		},
	}
	show.Flags().StringVarP(&format, "format", "f", string(config.FormatCUE), "encoding `FORMAT`: cue, toml, yaml or json")
	show.Flags().BoolVar(&resolved, "resolved", false, "apply the theme and global flags")
	cfgCmd.AddCommand(show)

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show the configuration file in use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.showConfigPath(cmd.OutOrStdout())
		},
	})

	var dir string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Create the default configuration file",
		Long: `Create config.cue with the library defaults. An existing
configuration file is left untouched.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd.OutOrStdout(), dir)
		},
	}
	initCmd.Flags().StringVar(&dir, "dir", "", "create the file in `DIR` instead of the configuration directory")
	cfgCmd.AddCommand(initCmd)

	return cfgCmd
}

func (a *App) showConfig(w io.Writer, format config.FileFormat, resolved bool) error {
	if err := format.Validate(); err != nil {
		return &richhelp.UsageError{Err: err}
	}
	if a.cfgErr != nil {
		// The load warning was printed already; the defaults would mislead.
		return &ExitError{Code: richhelp.ExitFailure}
	}

	cfg := a.cfg.Help
	if resolved {
		cfg = a.renderer.Config()
	}
	data, err := config.Encode(cfg, format)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (a *App) showConfigPath(w io.Writer) error {
	if a.cfg.Path != "" {
		_, err := fmt.Fprintln(w, a.cfg.Path)
		return err
	}
	dir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %s\n", SubtitleStyle.Render("(using defaults, looked in)"), CmdStyle.Render(dir))
	return err
}

func initConfig(w io.Writer, dir string) error {
	if dir == "" {
		d, err := config.ConfigDir()
		if err != nil {
			return err
		}
		dir = d
	}
	path, err := config.CreateDefaultConfig(dir)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s %s\n", SuccessStyle.Render("Configuration file:"), path)
	return err
}
