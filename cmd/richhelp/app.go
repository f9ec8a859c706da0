// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/invowk/richhelp/internal/config"
	"github.com/invowk/richhelp/internal/issue"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tui"
	"github.com/invowk/richhelp/pkg/command/cobracmd"
	"github.com/invowk/richhelp/pkg/richhelp"
)

type (
	// App wires the CLI's dependencies. Every command handler receives the App
	// and reads the loaded configuration and the help renderer through it.
	App struct {
		Config ConfigProvider
		stdout io.Writer
		stderr io.Writer

		flags    globalFlags
		cfg      *config.Config
		cfgErr   error
		renderer *richhelp.Renderer
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// globalFlags holds the persistent flags of the root command.
	globalFlags struct {
		output     string
		theme      string
		configFile string
		width      int
		verbose    bool
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) *App {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	return &App{
		Config: deps.Config,
		stdout: deps.Stdout,
		stderr: deps.Stderr,
	}
}

// Run executes the CLI with args and returns the process exit code.
//
// Help screens are rendered by cobra before any PreRun hook, so the flags
// that shape them are parsed and the configuration is loaded up front.
func (a *App) Run(ctx context.Context, args []string) int {
	root := newRootCommand(a)
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	target, flagErr := parseGlobalFlags(root, args)
	a.loadConfig(ctx)

	format := richhelp.Format(a.flags.output)
	if err := format.Validate(); err != nil {
		a.flags.output = string(richhelp.FormatText)
		a.renderer = a.newRenderer(a.flags.theme)
		if werr := a.renderer.WriteError(a.stderr, err, cobracmd.Wrap(root)); werr != nil {
			fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+err.Error())
		}
		return richhelp.ExitUsage
	}
	a.renderer = a.newRenderer(a.flags.theme)

	if flagErr != nil {
		// Cobra would let an unknown flag swallow the next argument and then
		// report that argument as an unknown command.
		uerr := &richhelp.UsageError{Err: flagErr}
		if werr := a.renderer.WriteError(a.stderr, uerr, cobracmd.Wrap(root), cobracmd.Path(target)...); werr != nil {
			fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+flagErr.Error())
		}
		return richhelp.ExitUsage
	}

	return a.exitCode(a.renderer.Execute(ctx, root))
}

// parseGlobalFlags parses the flags of the command args select, persistent
// ones included. It returns that command and the flag parsing error, if any.
func parseGlobalFlags(root *cobra.Command, args []string) (*cobra.Command, error) {
	target, _, err := root.Find(args)
	if err != nil || target == nil {
		target = root
	}
	target.InitDefaultHelpFlag()
	target.InitDefaultVersionFlag()
	return target, target.ParseFlags(args)
}

// loadConfig loads the configuration. A failure is reported as a warning and
// the library defaults are used instead.
func (a *App) loadConfig(ctx context.Context) {
	cfg, err := a.Config.Load(ctx, config.LoadOptions{ConfigFilePath: a.flags.configFile})
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		if a.flags.verbose {
			a.renderIssue(err)
		}
		cfg = &config.Config{Help: theme.Defaults()}
	}
	a.cfg = cfg
	a.cfgErr = err
}

// renderIssue prints the catalog article linked to err, if any.
func (a *App) renderIssue(err error) {
	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		return
	}
	article := issue.Get(ae.Issue)
	if article == nil {
		return
	}
	con := tui.NewConsole(a.stderr, tui.ConsoleOptions{Width: a.flags.width})
	rendered, rerr := article.Render(con)
	if rerr != nil {
		return
	}
	fmt.Fprint(a.stderr, rendered)
}

// newRenderer builds a help renderer from the loaded configuration and the
// global flags. A theme ending in .toml is loaded as a theme file.
func (a *App) newRenderer(themeName string) *richhelp.Renderer {
	level := log.WarnLevel
	if a.flags.verbose {
		level = log.DebugLevel
	}
	opts := []richhelp.Option{
		richhelp.WithConfig(a.cfg.Help),
		richhelp.WithFormat(richhelp.Format(a.flags.output)),
		richhelp.WithLogger(log.NewWithOptions(a.stderr, log.Options{Prefix: config.AppName, Level: level})),
	}
	themeName, err := loadTheme(themeName)
	if err != nil {
		fmt.Fprintln(a.stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
	}
	if themeName != "" {
		opts = append(opts, richhelp.WithTheme(themeName))
	}
	if a.flags.width > 0 {
		opts = append(opts, richhelp.WithWidth(a.flags.width))
	}
	return richhelp.New(opts...)
}

// loadTheme registers a .toml theme file and returns the name it registers
// under. Other names are returned unchanged.
func loadTheme(name string) (string, error) {
	if !strings.EqualFold(filepath.Ext(name), ".toml") {
		return name, nil
	}
	registered, err := theme.LoadThemeFile(name)
	if err != nil {
		return "", issue.NewErrorContext().
			WithIssue(issue.ThemeFileInvalidID).
			WithOperation("load theme file").
			WithResource(name).
			WithSuggestion("A theme file needs a [palette] or a [format] table").
			Wrap(err).
			BuildError()
	}
	return registered, nil
}

// exitCode reports err and maps it to an exit status. Usage errors and the
// abort line were already rendered by the help engine.
func (a *App) exitCode(err error) int {
	var exitErr *ExitError
	switch {
	case err == nil:
		return richhelp.ExitOK
	case errors.As(err, &exitErr):
		if exitErr.Err != nil {
			fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(exitErr.Err, a.flags.verbose))
		}
		return exitErr.Code
	case richhelp.IsUsageError(err), errors.Is(err, richhelp.ErrAborted):
		return richhelp.ExitCode(err)
	default:
		fmt.Fprintln(a.stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose))
		return richhelp.ExitCode(err)
	}
}

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}
