// Package main provides the resolver CLI that reads
// multi-document YAML, renders placeholders in every string
// scalar, and writes the result.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/byte4ever/strtemplate/resolver"
	"github.com/byte4ever/strtemplate/strtemplate"
	"github.com/byte4ever/strtemplate/valuesfile"
)

type variableFlags strtemplate.Map

func (vf *variableFlags) String() string {
	return fmt.Sprintf("%v", *vf)
}

func (vf *variableFlags) Set(value string) error {
	parts := strings.SplitN(value, "=", 2)
	if len(parts) != 2 {
		return errors.New(
			"variable flag must be name=value",
		)
	}

	(*vf)[strings.TrimSpace(parts[0])] = parts[1]

	return nil
}

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run() error {
	const errCtx = "resolver"

	var (
		inFile      string
		outFile     string
		startTag    string
		endTag      string
		valuesFiles arrayFlags
	)

	vars := make(variableFlags)

	flag.StringVar(
		&inFile, "infile", "",
		"input YAML file path",
	)

	flag.StringVar(
		&outFile, "outfile", "",
		"output YAML file path",
	)

	flag.Var(
		&vars, "variable",
		"name=value (repeatable)",
	)

	flag.Var(
		&valuesFiles, "values",
		"JSON, YAML or TOML values file (repeatable)",
	)

	flag.StringVar(
		&startTag, "start_tag", strtemplate.DefaultStartTag,
		"start tag for placeholders",
	)

	flag.StringVar(
		&endTag, "end_tag", strtemplate.DefaultEndTag,
		"end tag for placeholders",
	)

	flag.Parse()

	values, err := valuesfile.LoadAll(valuesFiles)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	for key, val := range vars {
		values[key] = val
	}

	inReader := os.Stdin

	if inFile != "" {
		fi, err := os.Open(inFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: opening input: %w",
				errCtx, err,
			)
		}

		defer fi.Close() //nolint:errcheck // best-effort close

		inReader = fi
	}

	outWriter := os.Stdout

	if outFile != "" {
		fo, err := os.Create(outFile) //nolint:gosec // path from CLI flag
		if err != nil {
			return fmt.Errorf(
				"%s: creating output: %w",
				errCtx, err,
			)
		}

		defer fo.Close() //nolint:errcheck // best-effort close

		outWriter = fo
	}

	if err := resolver.RenderDocuments(
		inReader, outWriter, values,
		strtemplate.WithTags(startTag, endTag),
	); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}
