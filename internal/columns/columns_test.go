// SPDX-License-Identifier: MPL-2.0

package columns

import (
	"io"
	"slices"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/invowk/richhelp/internal/textflow"
	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command"
)

func testContext(mutate func(*theme.Config)) Context {
	cfg := theme.Defaults()
	if mutate != nil {
		mutate(&cfg)
	}
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	sections, _ := theme.HelpSections(cfg.OptionsTableHelpSections)
	return Context{
		Config:   cfg,
		Styles:   theme.Compile(cfg, r),
		Flow:     textflow.Options{Markup: cfg.Markup()},
		Sections: sections,
	}
}

func param(b *command.Builder) *command.Parameter {
	return b.Build().Params[0]
}

func TestFor_FlagColumns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		param  *command.Parameter
		mutate func(*theme.Config)
		types  []theme.ColumnType
		want   []string
	}{
		{
			name:  "long and short",
			param: param(command.New("x").Option("--env, -e")),
			types: []theme.ColumnType{theme.ColumnOptLong, theme.ColumnOptShort, theme.ColumnOptAll},
			want:  []string{"--env", "-e", "--env, -e"},
		},
		{
			name:   "short flags first",
			param:  param(command.New("x").Option("--env, -e")),
			mutate: func(c *theme.Config) { c.ShortFlagsFirst = true },
			types:  []theme.ColumnType{theme.ColumnOptAll, theme.ColumnOptPrimary},
			want:   []string{"-e, --env", "-e, --env"},
		},
		{
			name:  "switch pair",
			param: param(command.New("x").Option("--shout/--no-shout")),
			types: []theme.ColumnType{theme.ColumnOptLong, theme.ColumnOptPrimary, theme.ColumnOptSecondary, theme.ColumnMetavar},
			want:  []string{"--shout/--no-shout", "--shout", "--no-shout", ""},
		},
		{
			name:  "argument label",
			param: param(command.New("x").Arg("src")),
			types: []theme.ColumnType{theme.ColumnOptLong, theme.ColumnOptShort, theme.ColumnOptAll, theme.ColumnMetavar},
			want:  []string{"SRC", "", "SRC", "TEXT"},
		},
		{
			name:  "argument metavar override",
			param: param(command.New("x").Arg("src", command.WithMetavar("SOURCE"))),
			types: []theme.ColumnType{theme.ColumnOptLong, theme.ColumnMetavar},
			want:  []string{"SOURCE", "TEXT"},
		},
		{
			name:  "required marker",
			param: param(command.New("x").Option("--name", command.Required())),
			types: []theme.ColumnType{theme.ColumnRequired},
			want:  []string{"*"},
		},
		{
			name:  "all with metavar",
			param: param(command.New("x").Option("--count, -c", command.WithType(command.ParamType{Name: command.TypeInteger}))),
			types: []theme.ColumnType{theme.ColumnOptAllMetavar},
			want:  []string{"--count, -c INTEGER"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := For(tt.param, tt.types, testContext(tt.mutate))
			if !slices.Equal(got, tt.want) {
				t.Errorf("For() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMetavar(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		param *command.Parameter
		want  string
	}{
		{"text", param(command.New("x").Option("--name")), "TEXT"},
		{"override", param(command.New("x").Option("--name", command.WithMetavar("NAME"))), "NAME"},
		{"choice", param(command.New("x").Option("--type", command.WithChoices("files", "dirs"))), "[files|dirs]"},
		{"bool flag", param(command.New("x").Flag("--force")), ""},
		{"closed range", param(command.New("x").Option("--level", command.WithType(command.ParamType{Name: command.TypeInteger}), command.WithRange(command.Float64(1), command.Float64(6)))), "INTEGER [1<=x<=6]"},
		{"lower bound", param(command.New("x").Option("--size", command.WithType(command.ParamType{Name: command.TypeFloat}), command.WithRange(command.Float64(0.5), nil))), "FLOAT [x>=0.5]"},
		{"bare counter", param(command.New("x").Option("-v", command.Counter())), ""},
		{"bounded counter", param(command.New("x").Option("-v", command.Counter(), command.WithRange(command.Float64(0), command.Float64(3)))), "[0<=x<=3]"},
	}

	ctx := testContext(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Metavar(tt.param, ctx); got != tt.want {
				t.Errorf("Metavar() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRangeText_Open(t *testing.T) {
	t.Parallel()

	p := &command.Parameter{Type: command.ParamType{
		Name: command.TypeFloat, Min: command.Float64(0), Max: command.Float64(1), MinOpen: true, MaxOpen: true,
	}}
	if got := RangeText(p); got != "0<x<1" {
		t.Errorf("RangeText() = %q, want 0<x<1", got)
	}
	p.Type.Min = nil
	if got := RangeText(p); got != "x<1" {
		t.Errorf("RangeText() = %q, want x<1", got)
	}
}

func TestHelp_Sections(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		param  *command.Parameter
		mutate func(*theme.Config)
		ctx    func(*Context)
		want   string
	}{
		{
			name: "default shown",
			param: param(command.New("x").Option("--type", command.WithHelp("Type of file to sync"),
				command.WithDefault("files"), command.ShowDefault())),
			want: "Type of file to sync [default: files]",
		},
		{
			name:  "default hidden without opt-in",
			param: param(command.New("x").Option("--type", command.WithHelp("Type"), command.WithDefault("files"))),
			want:  "Type",
		},
		{
			name:  "inherited default display",
			param: param(command.New("x").Option("--type", command.WithHelp("Type"), command.WithDefault("files"))),
			ctx:   func(c *Context) { c.ShowDefault = true },
			want:  "Type [default: files]",
		},
		{
			name:  "hide beats inherited",
			param: param(command.New("x").Option("--type", command.WithHelp("Type"), command.WithDefault("files"), command.HideDefault())),
			ctx:   func(c *Context) { c.ShowDefault = true },
			want:  "Type",
		},
		{
			name:  "literal default",
			param: param(command.New("x").Option("--when", command.WithHelp("When"), command.DefaultText("now"))),
			want:  "When [default: now]",
		},
		{
			name:  "envvar and required",
			param: param(command.New("x").Option("--token", command.WithHelp("API token"), command.Envvar("TOKEN", "API_TOKEN"), command.Required())),
			want:  "API token [env var: TOKEN, API_TOKEN] [required]",
		},
		{
			name:   "envvar first",
			param:  param(command.New("x").Option("--token", command.WithHelp("API token"), command.Envvar("TOKEN"))),
			mutate: func(c *theme.Config) { c.OptionEnvvarFirst = true },
			want:   "[env var: TOKEN] API token",
		},
		{
			name:  "auto envvar",
			param: param(command.New("x").Option("--log-level", command.WithHelp("Level"), command.ShowEnvvar())),
			ctx:   func(c *Context) { c.AutoEnvvarPrefix = "app" },
			want:  "Level [env var: APP_LOG_LEVEL]",
		},
		{
			name:  "deprecated prefix",
			param: param(command.New("x").Option("--old", command.WithHelp("Old"), command.Deprecated("use --new"))),
			want:  "[deprecated: use --new] Old",
		},
		{
			name:  "switch default",
			param: param(command.New("x").Option("--shout/--no-shout", command.WithHelp("Shout"), command.WithDefault(false), command.ShowDefault())),
			want:  "Shout [default: no-shout]",
		},
		{
			name:  "false flag default hidden",
			param: param(command.New("x").Flag("--force", command.WithHelp("Force"), command.ShowDefault())),
			want:  "Force",
		},
		{
			name:   "metavar appended",
			param:  param(command.New("x").Option("--name", command.WithHelp("Name"))),
			mutate: func(c *theme.Config) { c.AppendMetavarsHelp = true },
			want:   "Name [TEXT]",
		},
		{
			name:  "slice default",
			param: param(command.New("x").Option("--tag", command.WithHelp("Tags"), command.Multiple(), command.WithDefault([]string{"a", "b"}), command.ShowDefault())),
			want:  "Tags [default: a, b]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := testContext(tt.mutate)
			if tt.ctx != nil {
				tt.ctx(&ctx)
			}
			if got := Help(tt.param, ctx); got != tt.want {
				t.Errorf("Help() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestForCommand(t *testing.T) {
	t.Parallel()

	root := command.New("app").Sub(
		command.New("sync").Help("Synchronize files.\n\nLong description.").Alias("s"),
		command.New("old").Short("Legacy sync.").Deprecate(""),
	).Build()

	ctx := testContext(nil)
	ctx.Sections, _ = theme.HelpSections(ctx.Config.CommandsTableHelpSections)
	types := []theme.ColumnType{theme.ColumnName, theme.ColumnAliases, theme.ColumnHelp}

	if got, want := ForCommand(root.Subcommands[0], types, ctx), []string{"sync", "s", "Synchronize files."}; !slices.Equal(got, want) {
		t.Errorf("ForCommand(sync) = %q, want %q", got, want)
	}
	if got, want := ForCommand(root.Subcommands[1], types, ctx), []string{"old", "", "[deprecated] Legacy sync."}; !slices.Equal(got, want) {
		t.Errorf("ForCommand(old) = %q, want %q", got, want)
	}
}

func TestCompact(t *testing.T) {
	t.Parallel()

	types := []theme.ColumnType{theme.ColumnRequired, theme.ColumnOptLong, theme.ColumnOptShort, theme.ColumnHelp}

	t.Run("no required member", func(t *testing.T) {
		t.Parallel()
		gotTypes, gotRows := Compact(types, [][]string{
			{"", "--env", "-e", "Env"},
			{"", "--log-level", "", "Level"},
		})
		wantTypes := []theme.ColumnType{theme.ColumnOptLong, theme.ColumnOptShort, theme.ColumnHelp}
		if !slices.Equal(gotTypes, wantTypes) {
			t.Errorf("types = %v, want %v", gotTypes, wantTypes)
		}
		if len(gotRows[1]) != 3 || gotRows[1][0] != "--log-level" {
			t.Errorf("rows = %q", gotRows)
		}
	})

	t.Run("one required member keeps the column for every row", func(t *testing.T) {
		t.Parallel()
		gotTypes, gotRows := Compact(types, [][]string{
			{"*", "--env", "", "Env"},
			{"", "--log-level", "", "Level"},
		})
		wantTypes := []theme.ColumnType{theme.ColumnRequired, theme.ColumnOptLong, theme.ColumnHelp}
		if !slices.Equal(gotTypes, wantTypes) {
			t.Errorf("types = %v, want %v", gotTypes, wantTypes)
		}
		for i, r := range gotRows {
			if len(r) != 3 {
				t.Errorf("row %d has %d cells, want 3", i, len(r))
			}
		}
		if gotRows[1][0] != "" {
			t.Errorf("non-required row should keep an empty marker cell, got %q", gotRows[1][0])
		}
	})
}

func TestEnvvars(t *testing.T) {
	t.Parallel()

	hidden := param(command.New("x").Option("--token"))
	if got := Envvars(hidden, "APP"); got != nil {
		t.Errorf("Envvars() without show = %v", got)
	}
	arg := param(command.New("x").Arg("src"))
	arg.ShowEnvvar = true
	if got := Envvars(arg, "APP"); got != nil {
		t.Errorf("arguments get no auto env var, got %v", got)
	}
}
