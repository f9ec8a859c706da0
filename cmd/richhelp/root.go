// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/internal/config"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command/cobracmd"
	"github.com/invowk/richhelp/pkg/richhelp"
)

const (
	groupPreview = "preview"
	groupSetup   = "setup"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// newRootCommand creates the richhelp command tree bound to app.
func newRootCommand(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "richhelp",
		Short: "Preview rich help screens for command-line programs",
		Long: `richhelp renders boxed, themed help screens for cobra programs.

This binary renders its own help through the engine. The demo command
shows the help of a sample program so themes, output formats and the tree
view can be tried without writing any code.`,
		Example: `  richhelp demo sync --theme nord-box
  richhelp demo --tree
  richhelp themes dracula-modern
  richhelp config show --format yaml`,
		Version: getVersionString(),
		// Completion scripts are out of scope; the command would only add
		// noise to the help screens this binary exists to show.
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		Annotations: map[string]string{
			cobracmd.AnnotationEnvvarPrefix: config.EnvPrefix,
		},
	}
	root.AddGroup(
		&cobra.Group{ID: groupPreview, Title: "Preview Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Configuration Commands:"},
	)

	pf := root.PersistentFlags()
	pf.StringVarP(&app.flags.output, "output", "o", string(richhelp.FormatText), "help output `FORMAT`: text, plain, html or svg")
	pf.StringVar(&app.flags.theme, "theme", "", "help `THEME` such as nord-box, or a .toml theme file")
	pf.StringVar(&app.flags.configFile, "config", "", "config `FILE` (default is $XDG_CONFIG_HOME/richhelp/config.cue)")
	pf.IntVar(&app.flags.width, "width", 0, "force the help `COLUMNS`")
	pf.BoolVarP(&app.flags.verbose, "verbose", "v", false, "enable verbose output")
	_ = pf.SetAnnotation("theme", cobracmd.AnnotationEnvvar, []string{theme.ThemeEnvVar})
	_ = pf.SetAnnotation("width", cobracmd.AnnotationEnvvar, []string{config.EnvVar("width")})

	root.AddCommand(newDemoCommand(app))
	root.AddCommand(newThemesCommand(app))
	root.AddCommand(newConfigCommand(app))
	return root
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version != "dev" {
		return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev (built from source)"
}

// Execute runs the richhelp CLI and exits the process.
// This is called by main.main().
func Execute() {
	os.Exit(NewApp(Dependencies{}).Run(context.Background(), os.Args[1:]))
}
