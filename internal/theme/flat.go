// SPDX-License-Identifier: MPL-2.0

package theme

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/go-viper/mapstructure/v2"
)

const tagName = "mapstructure"

// fieldIndex maps flat keys to Config field indexes.
var fieldIndex = sync.OnceValue(func() map[string]int {
	t := reflect.TypeFor[Config]()
	idx := make(map[string]int, t.NumField())
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		idx[tag] = i
	}
	return idx
})

// Keys lists every flat configuration key in declaration order.
func Keys() []string {
	t := reflect.TypeFor[Config]()
	keys := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		keys = append(keys, tag)
	}
	return keys
}

// ToMap flattens the configuration into its key/value form. Unset three-state
// fields and the Highlighter are omitted.
func (c Config) ToMap() map[string]any {
	v := reflect.ValueOf(c)
	t := v.Type()
	out := make(map[string]any, t.NumField())
	for i := range t.NumField() {
		tag := t.Field(i).Tag.Get(tagName)
		if tag == "" || tag == "-" {
			continue
		}
		fv := v.Field(i)
		switch fv.Kind() {
		case reflect.Pointer:
			if fv.IsNil() {
				continue
			}
			out[tag] = fv.Elem().Interface()
		case reflect.Map:
			if fv.IsNil() {
				continue
			}
			out[tag] = fv.Interface()
		case reflect.String:
			out[tag] = fv.String()
		default:
			out[tag] = fv.Interface()
		}
	}
	return out
}

// FromMap builds a configuration from its flat form on top of the library
// defaults. Unknown keys are ignored.
func FromMap(m map[string]any) (Config, error) {
	cfg := Defaults()
	if _, err := decodeInto(&cfg, m); err != nil {
		return Defaults(), err
	}
	return cfg, nil
}

// decodeInto writes the keys of m onto cfg, leaving other fields untouched, and
// returns the keys that match no field.
func decodeInto(cfg *Config, m map[string]any) ([]string, error) {
	if len(m) == 0 {
		return nil, nil
	}
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          tagName,
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Metadata:         &md,
		Result:           cfg,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder: %w", err)
	}
	if err := dec.Decode(m); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}
	return md.Unused, nil
}

// applyUntouched writes each value whose field still holds its library default.
func applyUntouched(cfg *Config, values map[string]any) {
	idx := fieldIndex()
	cur := reflect.ValueOf(cfg).Elem()
	def := reflect.ValueOf(Defaults())
	filtered := make(map[string]any, len(values))
	for k, v := range values {
		i, ok := idx[k]
		if !ok {
			logger.Warn("theme sets unknown key", "key", k)
			continue
		}
		if reflect.DeepEqual(cur.Field(i).Interface(), def.Field(i).Interface()) {
			filtered[k] = v
		}
	}
	if _, err := decodeInto(cfg, filtered); err != nil {
		logger.Warn("theme values rejected", "err", err)
	}
}
