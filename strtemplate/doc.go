// Package strtemplate compiles delimited string templates into reusable
// renderers. Compile scans a template once for placeholders (by default
// "${name}") and returns an immutable Template holding an ordered list of
// literal fragments and placeholder slots. Rendering copies that list,
// fills the slots whose names appear in the supplied Values, and either
// joins the result into a string or hands back the raw fragments.
//
// There is no escaping, nesting or expression syntax: the text between a
// start tag and the next end tag is trimmed and used verbatim as a key.
// Missing values render as the empty string and malformed delimiters are
// kept as literal text, so neither Compile nor any render method fails.
//
// A compiled Template never changes after Compile returns and may be
// rendered from any number of goroutines at once.
package strtemplate
