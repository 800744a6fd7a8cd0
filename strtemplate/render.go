package strtemplate

import (
	"io"

	"github.com/valyala/bytebufferpool"
)

// RenderFunc renders a compiled template. It returns a
// string, or []any for templates compiled WithFragments.
type RenderFunc func(values Values) any

// Func compiles source and returns its render function.
func Func(source string, opts ...Option) RenderFunc {
	return Compile(source, opts...).Func()
}

// Func returns the template's render function.
func (t *Template) Func() RenderFunc {
	return t.Execute
}

// Execute renders values in the mode chosen at compile
// time: Fragments when compiled WithFragments, Render
// otherwise.
func (t *Template) Execute(values Values) any {
	if t.asFragments {
		return t.Fragments(values)
	}

	return t.Render(values)
}

// Fragments returns a fresh copy of the fragment sequence
// with placeholder slots filled from values. Filled slots
// hold the supplied value unconverted; unfilled slots are
// nil.
func (t *Template) Fragments(values Values) []any {
	frags := make([]any, len(t.fragments))
	copy(frags, t.fragments)

	if isNilValues(values) {
		return frags
	}

	values.Each(func(key string, value any) {
		if idx, ok := t.index[key]; ok {
			frags[idx] = value
		}
	})

	return frags
}

// Render substitutes values and joins the fragments using
// Stringify. Unfilled placeholders render as "".
func (t *Template) Render(values Values) string {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	t.join(bb, values)

	return bb.String()
}

// RenderTo writes the rendered template to w.
func (t *Template) RenderTo(
	w io.Writer,
	values Values,
) (int64, error) {
	bb := bytebufferpool.Get()
	defer bytebufferpool.Put(bb)

	t.join(bb, values)

	return bb.WriteTo(w)
}

func (t *Template) join(
	bb *bytebufferpool.ByteBuffer,
	values Values,
) {
	for _, frag := range t.Fragments(values) {
		_, _ = bb.WriteString(Stringify(frag)) //nolint:errcheck // never fails
	}
}
