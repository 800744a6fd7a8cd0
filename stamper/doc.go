// Package stamper reads Bazel workspace status files and substitutes
// single-brace {VAR} placeholders in format strings through the strtemplate
// compiler. LoadStamps parses one or more status files into a value map;
// Stamp combines loading and rendering in a single call.
package stamper
