// SPDX-License-Identifier: MPL-2.0

// Package richhelp renders rich, boxed help screens for command-line programs.
//
// A Renderer is attached to a command tree by delegation: the tree only has to
// satisfy command.Node, and cobra programs get an adapter through Install or
// Execute.
//
//	r := richhelp.New(richhelp.WithTheme("nord-box"))
//	if err := r.Execute(ctx, rootCmd); err != nil {
//		os.Exit(richhelp.ExitCode(err))
//	}
package richhelp

import (
	"fmt"
	"io"
	"maps"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/invowk/richhelp/internal/help"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/internal/tui"
	"github.com/invowk/richhelp/pkg/command"
)

type (
	// Renderer renders help, usage errors and the abort line. The effective
	// configuration is resolved once, on first use, and cached.
	Renderer struct {
		base      *theme.Config
		overrides map[string]any
		themeName string
		format    tui.Format
		width     int

		resolved atomic.Pointer[theme.Config]
	}

	// Option configures a Renderer.
	Option func(*Renderer)

	// Config is the flat help configuration. See theme.Keys for the settings.
	Config = theme.Config

	// Format selects how rendered help is exported.
	Format = tui.Format
)

// Output formats accepted by WithFormat.
const (
	FormatText  = tui.FormatText
	FormatPlain = tui.FormatPlain
	FormatHTML  = tui.FormatHTML
	FormatSVG   = tui.FormatSVG
)

// New creates a Renderer. Without options it renders with the process-wide
// default configuration (see SetDefault).
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithConfig replaces the base configuration.
func WithConfig(cfg Config) Option {
	return func(r *Renderer) { r.base = &cfg }
}

// WithOverrides sets flat configuration keys ("style_option", "width", ...)
// on top of the base configuration. Unknown keys are logged and ignored.
func WithOverrides(values map[string]any) Option {
	return func(r *Renderer) {
		if r.overrides == nil {
			r.overrides = make(map[string]any, len(values))
		}
		maps.Copy(r.overrides, values)
	}
}

// WithTheme selects a registered theme, a theme file loaded with
// theme.LoadThemeFile, or an inline JSON object of flat keys.
func WithTheme(name string) Option {
	return func(r *Renderer) { r.themeName = name }
}

// WithFormat selects the output format. FormatText is the default.
func WithFormat(f Format) Option {
	return func(r *Renderer) { r.format = f }
}

// WithWidth forces the layout width.
func WithWidth(width int) Option {
	return func(r *Renderer) { r.width = width }
}

// WithLogger routes configuration warnings to l. The logger is shared by
// every Renderer in the process.
func WithLogger(l *log.Logger) Option {
	return func(*Renderer) { theme.SetLogger(l) }
}

// SetDefault replaces the process-wide configuration used by renderers
// created without WithConfig.
func SetDefault(cfg Config) { theme.SetDefault(cfg) }

// Defaults returns the library defaults.
func Defaults() Config { return theme.Defaults() }

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	if c := r.resolved.Load(); c != nil {
		return *c
	}
	base := theme.Default()
	if r.base != nil {
		base = *r.base
	}
	cfg := theme.MustResolve(base, r.overrides, r.themeName)
	if r.width > 0 {
		cfg.Width = r.width
	}
	r.resolved.CompareAndSwap(nil, &cfg)
	return *r.resolved.Load()
}

// Help renders the help screen of the command reached from root by names.
func (r *Renderer) Help(w io.Writer, root command.Node, names ...string) (string, error) {
	c, ctx := r.composer(w, root, names)
	return r.export(c.Help(ctx), ctx.Path())
}

// WriteHelp writes the help screen of the command reached from root by names.
func (r *Renderer) WriteHelp(w io.Writer, root command.Node, names ...string) error {
	out, err := r.Help(w, root, names...)
	if err != nil {
		return err
	}
	return write(w, out)
}

// WriteError writes the usage error screen for err raised by the command
// reached from root by names.
func (r *Renderer) WriteError(w io.Writer, err error, root command.Node, names ...string) error {
	c, ctx := r.composer(w, root, names)
	out, xerr := r.export(c.Error(ctx, err), ctx.Path())
	if xerr != nil {
		return xerr
	}
	return write(w, out)
}

// WriteAbort writes the line shown when the user cancels.
func (r *Renderer) WriteAbort(w io.Writer) error {
	c := help.New(r.console(w), r.Config())
	out, err := r.export(c.Abort(), "")
	if err != nil {
		return err
	}
	return write(w, out)
}

func (r *Renderer) composer(w io.Writer, root command.Node, names []string) (*help.Composer, help.Context) {
	return help.New(r.console(w), r.Config()), help.NewContext(root, names...)
}

// console binds a console to w. HTML and SVG exports keep full color even
// when w is not a terminal; plain output has none.
func (r *Renderer) console(w io.Writer) *tui.Console {
	cfg := r.Config()
	opts := tui.ConsoleOptions{
		Width:         cfg.Width,
		MaxWidth:      cfg.MaxWidth,
		ColorSystem:   cfg.ColorSystem,
		ForceTerminal: cfg.ForceTerminal,
	}
	switch r.format {
	case tui.FormatHTML, tui.FormatSVG:
		if opts.ColorSystem == "" || opts.ColorSystem == tui.ColorAuto {
			opts.ColorSystem = tui.ColorTrueColor
		}
	case tui.FormatPlain:
		opts.ColorSystem = tui.ColorNone
	}
	return tui.NewConsole(w, opts)
}

func (r *Renderer) export(rendered, title string) (string, error) {
	out, err := tui.Export(rendered, r.format, title)
	if err != nil {
		return "", fmt.Errorf("export help: %w", err)
	}
	return out, nil
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("write help: %w", err)
	}
	return nil
}
