// SPDX-License-Identifier: MPL-2.0

// Package panels assigns the visible parameters and subcommands of a command
// to the titled panels its help is drawn in.
//
// Parameter panels and command panels are two independent sequences. Each
// starts with the panels declared for the command (on the command itself, in
// the configuration's panels table, or in the legacy option_groups and
// command_groups tables) and ends with a synthesized default panel that
// absorbs every member nobody claimed.
package panels

import (
	"maps"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/invowk/richhelp/internal/theme"
	"github.com/invowk/richhelp/pkg/command"
)

type (
	// Panel is one titled group of rows.
	Panel struct {
		command.PanelSpec

		Params   []*command.Parameter
		Commands []command.Node

		// Declared is false for the synthesized default panels and for
		// panels only ever declared implicitly.
		Declared bool
	}

	// Result is the outcome of Assign. Empty panels are already dropped.
	Result struct {
		Params   []*Panel
		Commands []*Panel
		// CommandsFirst is set when commands_before_options applies: the
		// toggle is on and both sequences contain a declared panel.
		CommandsFirst bool
	}

	// registry collects the panels of one axis in first-seen order.
	registry struct {
		kind command.PanelKind
		// fallback is the title of the default panel; an item naming it
		// without a declaration joins the default panel.
		fallback string
		panels   []*Panel
		byName   map[string]*Panel
	}

	// claim is a declaration naming members of a panel.
	claim struct {
		panel   string
		members []string
	}

	// claimRank locates an item in the claim that assigned it. ok is false
	// for items placed by their own panel field.
	claimRank struct {
		claim, pos int
		ok         bool
	}
)

// Len returns the number of rows of p.
func (p *Panel) Len() int { return len(p.Params) + len(p.Commands) }

// Order returns the panels in emission order: parameters then commands, or
// the reverse when CommandsFirst is set.
func (r Result) Order() []*Panel {
	out := make([]*Panel, 0, len(r.Params)+len(r.Commands))
	if r.CommandsFirst {
		return append(append(out, r.Commands...), r.Params...)
	}
	return append(append(out, r.Params...), r.Commands...)
}

// Assign computes the panels of n. path is the space-separated invocation
// path used to look up configured panels ("app sync"). Membership precedence
// is the item's own panel field, then legacy group tables, then the members
// pre-seeded in a panel declaration, then the default panel. Rows follow the
// command's declaration order, except that the members one claim brings in
// keep the order the claim lists them in.
func Assign(n command.Node, path string, cfg theme.Config) Result {
	info := n.Info()

	params := newRegistry(command.PanelParams, cfg.OptionsPanelTitle)
	commands := newRegistry(command.PanelCommands, cfg.CommandsPanelTitle)

	var paramSeeds, commandSeeds []claim
	declare := func(spec command.PanelSpec) {
		spec = normalize(spec)
		if spec.Name == "" {
			return
		}
		reg, seeds := params, &paramSeeds
		if spec.Kind == command.PanelCommands {
			reg, seeds = commands, &commandSeeds
		}
		reg.declare(spec)
		if len(spec.Members) > 0 {
			*seeds = append(*seeds, claim{panel: spec.Name, members: spec.Members})
		}
	}
	for _, spec := range info.Panels {
		declare(spec)
	}
	for _, key := range matchingKeys(cfg.Panels, path) {
		for _, spec := range cfg.Panels[key] {
			declare(spec)
		}
	}

	var paramLegacy, commandLegacy []claim
	for _, key := range matchingKeys(cfg.OptionGroups, path) {
		for _, g := range cfg.OptionGroups[key] {
			if spec := legacySpec(g, command.PanelParams); spec.Name != "" {
				params.declare(spec)
				paramLegacy = append(paramLegacy, claim{panel: spec.Name, members: g.Options})
			}
		}
	}
	for _, key := range matchingKeys(cfg.CommandGroups, path) {
		for _, g := range cfg.CommandGroups[key] {
			if spec := legacySpec(g, command.PanelCommands); spec.Name != "" {
				commands.declare(spec)
				commandLegacy = append(commandLegacy, claim{panel: spec.Name, members: g.Commands})
			}
		}
	}

	res := Result{
		Params:   assignParams(n.Parameters(), params, paramLegacy, paramSeeds, cfg),
		Commands: assignCommands(n.Children(), commands, commandLegacy, commandSeeds, cfg),
	}
	res.CommandsFirst = cfg.CommandsBeforeOptions && anyDeclared(res.Params) && anyDeclared(res.Commands)
	return res
}

func assignParams(ps []*command.Parameter, reg *registry, legacy, seeds []claim, cfg theme.Config) []*Panel {
	args := &Panel{PanelSpec: command.PanelSpec{Name: cfg.ArgumentsPanelTitle, Kind: command.PanelParams}}
	opts := &Panel{PanelSpec: command.PanelSpec{Name: cfg.OptionsPanelTitle, Kind: command.PanelParams}}

	ranks := make(map[*Panel][]claimRank)
	for _, p := range ps {
		if p.Hidden {
			continue
		}
		if owner, rank := reg.owner(p.Panel, p.Matches, legacy, seeds); owner != nil {
			owner.Params = append(owner.Params, p)
			ranks[owner] = append(ranks[owner], rank)
			continue
		}
		switch {
		case p.IsArgument() && !cfg.ShowArguments:
		case p.IsArgument() && !cfg.GroupArgumentsOptions:
			args.Params = append(args.Params, p)
		default:
			opts.Params = append(opts.Params, p)
		}
	}
	for _, p := range reg.panels {
		sortClaimed(p.Params, ranks[p])
	}
	return nonEmpty(append(reg.panels, args, opts))
}

func assignCommands(children []command.Node, reg *registry, legacy, seeds []claim, cfg theme.Config) []*Panel {
	def := &Panel{PanelSpec: command.PanelSpec{Name: cfg.CommandsPanelTitle, Kind: command.PanelCommands}}

	ranks := make(map[*Panel][]claimRank)
	for _, c := range children {
		info := c.Info()
		if info.Hidden {
			continue
		}
		if owner, rank := reg.owner(info.Panel, info.Matches, legacy, seeds); owner != nil {
			owner.Commands = append(owner.Commands, c)
			ranks[owner] = append(ranks[owner], rank)
			continue
		}
		def.Commands = append(def.Commands, c)
	}
	for _, p := range reg.panels {
		sortClaimed(p.Commands, ranks[p])
	}
	return nonEmpty(append(reg.panels, def))
}

func newRegistry(kind command.PanelKind, fallback string) *registry {
	return &registry{kind: kind, fallback: fallback, byName: make(map[string]*Panel)}
}

// declare adds spec or merges it into the panel of the same name. Later
// declarations only fill fields the earlier ones left empty.
func (r *registry) declare(spec command.PanelSpec) *Panel {
	if p, ok := r.byName[spec.Name]; ok {
		fill(&p.PanelSpec, spec)
		if !spec.Implicit {
			p.Implicit = false
			p.Declared = true
		}
		return p
	}
	spec.Kind = r.kind
	spec.Members = nil
	p := &Panel{PanelSpec: spec, Declared: !spec.Implicit}
	r.panels = append(r.panels, p)
	r.byName[spec.Name] = p
	return p
}

// owner returns the panel an item belongs to, or nil for the default panel.
// The rank tells where the claim that assigned the item lists it.
func (r *registry) owner(explicit string, matches func(string) bool, legacy, seeds []claim) (*Panel, claimRank) {
	if explicit != "" {
		p, ok := r.byName[explicit]
		switch {
		case ok:
			return p, claimRank{}
		case explicit == r.fallback:
			return nil, claimRank{}
		}
		return r.declare(command.PanelSpec{Name: explicit}), claimRank{}
	}
	id := 0
	for _, claims := range [][]claim{legacy, seeds} {
		for _, c := range claims {
			if pos := slices.IndexFunc(c.members, matches); pos >= 0 {
				return r.byName[c.panel], claimRank{claim: id, pos: pos, ok: true}
			}
			id++
		}
	}
	return nil, claimRank{}
}

// sortClaimed reorders the items each claim brought into a panel by their
// position in that claim. Every item stays within the slots its claim
// occupies, so explicit members and other claims keep declaration order.
func sortClaimed[T any](items []T, ranks []claimRank) {
	slots := make(map[int][]int)
	for i, r := range ranks {
		if r.ok {
			slots[r.claim] = append(slots[r.claim], i)
		}
	}
	for _, idx := range slots {
		byPos := slices.Clone(idx)
		slices.SortStableFunc(byPos, func(a, b int) int { return ranks[a].pos - ranks[b].pos })
		vals := make([]T, len(byPos))
		for k, i := range byPos {
			vals[k] = items[i]
		}
		for k, i := range idx {
			items[i] = vals[k]
		}
	}
}

func normalize(spec command.PanelSpec) command.PanelSpec {
	if spec.Name == "" {
		spec.Name = spec.Title
	}
	if spec.Kind == "" {
		spec.Kind = command.PanelParams
	}
	return spec
}

func legacySpec(g theme.GroupSpec, kind command.PanelKind) command.PanelSpec {
	return command.PanelSpec{
		Name:        g.Name,
		Kind:        kind,
		Help:        g.Help,
		Box:         g.Box,
		BorderStyle: g.BorderStyle,
		TitleStyle:  g.TitleStyle,
	}
}

func fill(dst *command.PanelSpec, src command.PanelSpec) {
	set := func(d *string, s string) {
		if *d == "" {
			*d = s
		}
	}
	set(&dst.Title, src.Title)
	set(&dst.Help, src.Help)
	set(&dst.Box, src.Box)
	set(&dst.BorderStyle, src.BorderStyle)
	set(&dst.TitleStyle, src.TitleStyle)
	set(&dst.HelpStyle, src.HelpStyle)
	set(&dst.Align, src.Align)
	if len(dst.ColumnTypes) == 0 {
		dst.ColumnTypes = src.ColumnTypes
	}
	if dst.InlineHelpInTitle == nil {
		dst.InlineHelpInTitle = src.InlineHelpInTitle
	}
}

// matchingKeys returns the keys of m that select path: the exact key first,
// then glob keys in sorted order. Words of a key are matched as path
// segments, so "app *" selects every direct subcommand of app.
func matchingKeys[V any](m map[string]V, path string) []string {
	if len(m) == 0 {
		return nil
	}
	var out []string
	if _, ok := m[path]; ok {
		out = append(out, path)
	}
	target := toSegments(path)
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if key == path {
			continue
		}
		if ok, err := doublestar.Match(toSegments(key), target); err == nil && ok {
			out = append(out, key)
		}
	}
	return out
}

func toSegments(s string) string {
	return strings.Join(strings.Fields(s), "/")
}

func nonEmpty(ps []*Panel) []*Panel {
	return slices.DeleteFunc(ps, func(p *Panel) bool { return p.Len() == 0 })
}

func anyDeclared(ps []*Panel) bool {
	return slices.ContainsFunc(ps, func(p *Panel) bool { return p.Declared })
}
