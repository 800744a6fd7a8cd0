// Package valuesfile loads template values from JSON, YAML or TOML files.
// Nested objects are flattened to dotted keys ("db.host") and arrays to
// indexed keys ("hosts.0") so that every leaf can be addressed by a plain
// placeholder name. The result is a strtemplate.Map ready for rendering.
package valuesfile
