package strtemplate

import (
	"sort"
	"strings"
)

// Template is a compiled template. The zero value renders
// as the empty string.
type Template struct {
	source   string
	startTag string
	endTag   string

	// fragments holds literal strings and nil slots.
	fragments []any

	// index maps a placeholder name to its slot. A name that
	// occurs twice keeps only its last position.
	index map[string]int

	asFragments bool
}

// Compile parses source into a Template. Text without a
// complete placeholder is kept as a single literal.
func Compile(source string, opts ...Option) *Template {
	return compile(source, true, opts)
}

// CompilePtr is Compile for an optional source. A nil
// source yields a template with no fragments at all.
func CompilePtr(source *string, opts ...Option) *Template {
	if source == nil {
		return compile("", false, opts)
	}

	return compile(*source, true, opts)
}

func compile(source string, present bool, opts []Option) *Template {
	co := defaultConfig()
	for _, o := range opts {
		o(&co)
	}

	tpl := &Template{
		source:      source,
		startTag:    co.startTag,
		endTag:      co.endTag,
		index:       map[string]int{},
		asFragments: co.fragments,
	}

	if present {
		tpl.fragments, tpl.index = parse(
			source, co.startTag, co.endTag,
		)
	}

	return tpl
}

func parse(
	source string,
	startTag string,
	endTag string,
) ([]any, map[string]int) {
	var (
		fragments []any
		offset    int
		matched   bool
	)

	index := make(map[string]int)

	for {
		start := indexFrom(source, startTag, offset)
		if start < 0 {
			break
		}

		end := indexFrom(source, endTag, start+len(startTag))
		if end < 0 {
			// Dangling start tag: the rest stays literal.
			break
		}

		matched = true

		if start > offset {
			fragments = append(fragments, source[offset:start])
		}

		name := strings.TrimSpace(source[start+len(startTag) : end])
		if name != "" {
			index[name] = len(fragments)
			fragments = append(fragments, nil)
		}

		next := end + len(endTag)
		if next <= offset {
			// Zero-width tags would never advance.
			break
		}

		offset = next
	}

	switch {
	case !matched:
		fragments = append(fragments, source)
	case offset < len(source):
		fragments = append(fragments, source[offset:])
	}

	return fragments, index
}

// indexFrom is strings.Index starting at from.
func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}

	idx := strings.Index(s[from:], substr)
	if idx < 0 {
		return -1
	}

	return from + idx
}

// Source returns the text the template was compiled from.
func (t *Template) Source() string {
	return t.source
}

// Tags returns the start and end delimiters.
func (t *Template) Tags() (string, string) {
	return t.startTag, t.endTag
}

// ReturnsFragments reports whether Execute yields the
// fragment sequence rather than a string.
func (t *Template) ReturnsFragments() bool {
	return t.asFragments
}

// Placeholders returns the distinct placeholder names in
// sorted order.
func (t *Template) Placeholders() []string {
	names := make([]string, 0, len(t.index))
	for name := range t.index {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
