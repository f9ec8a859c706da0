// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// maxFileSize bounds configuration files read into memory.
const maxFileSize int64 = 1 << 20

const schemaDefinition = "#Config"

//go:embed config_schema.cue
var configSchema string

// loadCUEFile parses a CUE file, validates it against #Config and decodes it
// into a flat settings map.
func loadCUEFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := checkFileSize(data, path); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()
	user := ctx.CompileBytes(data, cue.Filename(path))
	if user.Err() != nil {
		return nil, formatCUEError(user.Err(), path)
	}
	return validate(ctx, user, path)
}

// validateSettings checks settings decoded by Viper from TOML, YAML or JSON
// against the same schema as CUE files.
func validateSettings(settings map[string]any, path string) error {
	ctx := cuecontext.New()
	value := ctx.Encode(normalizeNumbers(settings))
	if value.Err() != nil {
		return formatCUEError(value.Err(), path)
	}
	_, err := validate(ctx, value, path)
	return err
}

func validate(ctx *cue.Context, user cue.Value, path string) (map[string]any, error) {
	schema := ctx.CompileString(configSchema)
	if schema.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile config schema: %w", schema.Err())
	}
	unified := schema.LookupPath(cue.ParsePath(schemaDefinition)).Unify(user)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return nil, formatCUEError(err, path)
	}
	var settings map[string]any
	if err := unified.Decode(&settings); err != nil {
		return nil, formatCUEError(err, path)
	}
	return settings, nil
}

// normalizeNumbers turns whole float64 values, as produced by JSON decoding,
// into int64 so they unify with int fields of the schema.
func normalizeNumbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, val := range x {
			out[k] = normalizeNumbers(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = normalizeNumbers(val)
		}
		return out
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return int64(x)
		}
		return x
	default:
		return v
	}
}

// formatCUEError reports each CUE error as "<file>: <path>: <message>".
func formatCUEError(err error, filePath string) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return fmt.Errorf("%s: %w", filePath, err)
	}

	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		path := formatPath(cueerrors.Path(e))
		msg := e.Error()
		if path != "" && strings.HasPrefix(msg, path) {
			msg = strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(msg, path), ":"))
		}
		if path != "" {
			msg = path + ": " + msg
		}
		lines = append(lines, msg)
	}
	if len(lines) == 1 {
		return fmt.Errorf("%s: %s", filePath, lines[0])
	}
	return fmt.Errorf("%s: validation failed:\n  %s", filePath, strings.Join(lines, "\n  "))
}

// formatPath renders ["panels", "app sync", "0", "box"] as
// `panels."app sync"[0].box`.
func formatPath(path []string) string {
	var b strings.Builder
	for i, part := range path {
		switch {
		case i > 0 && isIndex(part):
			b.WriteString("[" + part + "]")
		default:
			if i > 0 {
				b.WriteByte('.')
			}
			if strings.ContainsAny(part, " .") && !strings.HasPrefix(part, `"`) {
				part = `"` + part + `"`
			}
			b.WriteString(part)
		}
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func checkFileSize(data []byte, filename string) error {
	if int64(len(data)) > maxFileSize {
		return fmt.Errorf("%s: file size %d bytes exceeds maximum %d bytes", filename, len(data), maxFileSize)
	}
	return nil
}
