// Package tplcache memoizes compiled templates. Entries are keyed by the
// SHA256 digest of the template source together with its delimiters and
// output mode, so the same text compiled with different tags is cached
// separately.
package tplcache
