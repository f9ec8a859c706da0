// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

const (
	defaultPalette = "default"
	defaultFormat  = "box"
)

var registry = struct {
	sync.RWMutex
	palettes map[string]Palette
	formats  map[string]Format
}{
	palettes: maps.Clone(builtinPalettes),
	formats:  maps.Clone(builtinFormats),
}

// themeFile is the on-disk layout of a theme file.
type themeFile struct {
	Name    string         `toml:"name"`
	Palette map[string]any `toml:"palette"`
	Format  map[string]any `toml:"format"`
}

// RegisterPalette adds or replaces a named palette.
func RegisterPalette(name string, p Palette) {
	registry.Lock()
	defer registry.Unlock()
	registry.palettes[name] = maps.Clone(p)
}

// RegisterFormat adds or replaces a named format.
func RegisterFormat(name string, f Format) {
	registry.Lock()
	defer registry.Unlock()
	registry.formats[name] = maps.Clone(f)
}

// PaletteNames lists the registered palettes in sorted order.
func PaletteNames() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.palettes))
}

// FormatNames lists the registered formats in sorted order.
func FormatNames() []string {
	registry.RLock()
	defer registry.RUnlock()
	return slices.Sorted(maps.Keys(registry.formats))
}

// LoadThemeFile reads a TOML theme file and registers its palette and format
// under the file's name (or its base name without extension). It returns the
// registered name.
//
//	name = "ocean"
//	[palette]
//	style_option = "bold #0077be"
//	[format]
//	style_options_panel_box = "heavy"
func LoadThemeFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read theme file: %w", err)
	}
	var tf themeFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("parse theme file %s: %w", path, err)
	}
	name := tf.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if len(tf.Palette) > 0 {
		RegisterPalette(name, tf.Palette)
	}
	if len(tf.Format) > 0 {
		RegisterFormat(name, tf.Format)
	}
	if len(tf.Palette) == 0 && len(tf.Format) == 0 {
		return "", fmt.Errorf("theme file %s defines neither [palette] nor [format]", path)
	}
	return name, nil
}

// lookup resolves a theme name into the combined palette and format values.
// "nord-slim" selects both axes; a bare name may be either.
func lookup(name string) (map[string]any, error) {
	registry.RLock()
	defer registry.RUnlock()

	_, isPalette := registry.palettes[name]
	_, isFormat := registry.formats[name]
	pal, fmtName := defaultPalette, defaultFormat
	switch {
	case isPalette && isFormat:
		pal, fmtName = name, name
	case isPalette:
		pal = name
	case isFormat:
		fmtName = name
	default:
		color, format, ok := strings.Cut(name, "-")
		_, okPalette := registry.palettes[color]
		_, okFormat := registry.formats[format]
		if !ok || !okPalette || !okFormat {
			return nil, &ThemeNotFoundError{Name: name, Available: availableLocked()}
		}
		pal, fmtName = color, format
	}

	out := make(map[string]any)
	maps.Copy(out, registry.palettes[pal])
	maps.Copy(out, registry.formats[fmtName])
	return out, nil
}

func availableLocked() []string {
	names := slices.Sorted(maps.Keys(registry.palettes))
	return append(names, slices.Sorted(maps.Keys(registry.formats))...)
}
