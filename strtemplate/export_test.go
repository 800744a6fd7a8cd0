package strtemplate

// CompiledFragmentsForTest exposes the compiled fragment
// storage of a template.
func CompiledFragmentsForTest(t *Template) []any {
	return t.fragments
}
