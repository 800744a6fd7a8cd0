// Package templating expands template files through the strtemplate
// compiler. Values come from stamp info files, JSON/YAML/TOML values files,
// explicit NAME=VALUE variables and imported partial templates, with
// configurable delimiters (default "${" and "}").
//
// The Engine type holds configuration and expands templates via the Expand
// method, which reads a template file, resolves the value context, renders
// either text or a JSON fragment array, and writes the result.
package templating
