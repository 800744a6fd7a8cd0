package valuesfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/strtemplate/strtemplate"
)

// ErrUnsupportedFormat is returned for file extensions
// other than .json, .yaml, .yml and .toml.
var ErrUnsupportedFormat = errors.New("unsupported values format")

// Format identifies a values file encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf derives the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf(
			"%w: %q", ErrUnsupportedFormat, path,
		)
	}
}

// Load reads a single values file.
func Load(path string) (strtemplate.Map, error) {
	const errCtx = "loading values"

	format, err := FormatOf(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	vals, err := Parse(content, format)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: %s: %w", errCtx, path, err,
		)
	}

	return vals, nil
}

// LoadAll reads values files in order; keys from later
// files override earlier ones.
func LoadAll(paths []string) (strtemplate.Map, error) {
	merged := make(strtemplate.Map)

	for _, pa := range paths {
		vals, err := Load(pa)
		if err != nil {
			return nil, err
		}

		for key, val := range vals {
			merged[key] = val
		}
	}

	return merged, nil
}

// Parse decodes content in the given format and flattens
// it. Empty content yields an empty map.
func Parse(
	content []byte,
	format Format,
) (strtemplate.Map, error) {
	const errCtx = "parsing values"

	var doc any

	if len(bytes.TrimSpace(content)) > 0 {
		var err error

		switch format {
		case FormatJSON:
			err = json.Unmarshal(content, &doc)
		case FormatYAML:
			err = yaml.Unmarshal(content, &doc)
		case FormatTOML:
			var table map[string]any

			err = toml.Unmarshal(content, &table)
			doc = table
		default:
			err = fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
		}

		if err != nil {
			return nil, fmt.Errorf("%s: %w", errCtx, err)
		}
	}

	out := make(strtemplate.Map)
	flatten(out, "", doc)

	return out, nil
}

// flatten stores every leaf of v under its dotted path.
// Arrays are also kept whole under their own key.
func flatten(out strtemplate.Map, prefix string, v any) {
	switch typed := v.(type) {
	case map[string]any:
		for key, val := range typed {
			flatten(out, join(prefix, key), val)
		}
	case map[any]any:
		for key, val := range typed {
			flatten(out, join(prefix, strtemplate.Stringify(key)), val)
		}
	case []map[string]any:
		if prefix != "" {
			out[prefix] = typed
		}

		for idx, val := range typed {
			flatten(out, join(prefix, strconv.Itoa(idx)), val)
		}
	case []any:
		if prefix != "" {
			out[prefix] = typed
		}

		for idx, val := range typed {
			flatten(out, join(prefix, strconv.Itoa(idx)), val)
		}
	default:
		if prefix != "" {
			out[prefix] = typed
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
