package strtemplate

import (
	"reflect"
	"strconv"
)

// Values supplies substitutions by key. Map and Seq are
// the two stock implementations; a nil Values substitutes
// nothing.
type Values interface {
	// Each calls fn once per key.
	Each(fn func(key string, value any))
}

// Map is a keyed set of values.
type Map map[string]any

// Each implements Values.
func (m Map) Each(fn func(key string, value any)) {
	for key, val := range m {
		fn(key, val)
	}
}

// Seq is an indexed set of values, addressed by the
// decimal placeholder names "0", "1", ...
type Seq []any

// Each implements Values.
func (s Seq) Each(fn func(key string, value any)) {
	for idx, val := range s {
		fn(strconv.Itoa(idx), val)
	}
}

// ValuesOf adapts an arbitrary Go value. Values are
// returned as-is, maps become a Map with stringified keys,
// slices and arrays become a Seq, and structs expose their
// exported fields by name. Anything else, including nil,
// yields nil.
func ValuesOf(v any) Values {
	switch typed := v.(type) {
	case nil:
		return nil
	case Values:
		if isNilValues(typed) {
			return nil
		}

		return typed
	case map[string]any:
		return Map(typed)
	case []any:
		return Seq(typed)
	case map[string]string:
		out := make(Map, len(typed))
		for key, val := range typed {
			out[key] = val
		}

		return out
	case []string:
		out := make(Seq, len(typed))
		for idx, val := range typed {
			out[idx] = val
		}

		return out
	}

	return reflectValues(reflect.ValueOf(v))
}

// isNilValues reports whether vs is nil or wraps a nil
// pointer, map or slice.
func isNilValues(vs Values) bool {
	if vs == nil {
		return true
	}

	rv := reflect.ValueOf(vs)

	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}

func reflectValues(rv reflect.Value) Values {
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		out := make(Map, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			out[Stringify(iter.Key().Interface())] = iter.Value().Interface()
		}

		return out
	case reflect.Slice, reflect.Array:
		out := make(Seq, rv.Len())
		for idx := range out {
			out[idx] = rv.Index(idx).Interface()
		}

		return out
	case reflect.Struct:
		rt := rv.Type()
		out := make(Map, rt.NumField())

		for idx := 0; idx < rt.NumField(); idx++ {
			field := rt.Field(idx)
			if !field.IsExported() {
				continue
			}

			out[field.Name] = rv.Field(idx).Interface()
		}

		return out
	default:
		return nil
	}
}
