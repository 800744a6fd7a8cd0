// Package resolver renders placeholders inside YAML documents. It walks
// every document of a multi-document stream, renders each string scalar
// through the strtemplate compiler, and re-encodes the documents separated
// by "---" markers. Keys and non-string scalars are left untouched.
package resolver
