package resolver

import (
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/byte4ever/strtemplate/strtemplate"
	"github.com/byte4ever/strtemplate/tplcache"
)

type scalarRenderer struct {
	values strtemplate.Values
	opts   []strtemplate.Option
	cache  tplcache.Cache
}

// RenderDocuments reads multi-document YAML from in,
// renders every string scalar against values, and writes
// the result to out. Empty documents are dropped.
func RenderDocuments(
	in io.Reader,
	out io.Writer,
	values strtemplate.Values,
	opts ...strtemplate.Option,
) error {
	const errCtx = "rendering documents"

	sr := scalarRenderer{values: values, opts: opts}
	decoder := yaml.NewDecoder(in)

	firstObj := true

	for {
		var obj any

		err := decoder.Decode(&obj)
		if err == io.EOF {
			break
		}

		if err != nil {
			return fmt.Errorf(
				"%s: decoding yaml: %w",
				errCtx, err,
			)
		}

		if obj == nil {
			continue
		}

		buf, err := yaml.Marshal(sr.walk(obj))
		if err != nil {
			return fmt.Errorf(
				"%s: marshaling object: %w",
				errCtx, err,
			)
		}

		if firstObj {
			firstObj = false
		} else {
			if _, err := out.Write(
				[]byte("---\n"),
			); err != nil {
				return fmt.Errorf(
					"%s: writing separator: %w",
					errCtx, err,
				)
			}
		}

		if _, err := out.Write(buf); err != nil {
			return fmt.Errorf(
				"%s: writing output: %w",
				errCtx, err,
			)
		}
	}

	return nil
}

// walk renders string scalars in place and returns the
// (possibly replaced) node.
func (sr *scalarRenderer) walk(node any) any {
	switch typed := node.(type) {
	case string:
		return sr.cache.Compile(typed, sr.opts...).Render(sr.values)
	case map[string]any:
		for key, val := range typed {
			typed[key] = sr.walk(val)
		}

		return typed
	case map[any]any:
		for key, val := range typed {
			typed[key] = sr.walk(val)
		}

		return typed
	case []any:
		for idx, val := range typed {
			typed[idx] = sr.walk(val)
		}

		return typed
	default:
		return node
	}
}
