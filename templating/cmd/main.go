// Binary fast_template_engine expands templates using
// stamp info files, values files and explicit variable
// substitutions.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/byte4ever/strtemplate/strtemplate"
	"github.com/byte4ever/strtemplate/templating"
	"github.com/byte4ever/strtemplate/tplcache"
)

type arrayFlags []string

func (af *arrayFlags) String() string {
	return ""
}

func (af *arrayFlags) Set(value string) error {
	*af = append(*af, value)
	return nil
}

func run() error {
	const errCtx = "fast_template_engine"

	var (
		stampInfoFile arrayFlags
		valuesFiles   arrayFlags
		variable      arrayFlags
		imports       arrayFlags
		output        string
		tpl           string
		executable    bool
		fragments     bool
		startTag      string
		endTag        string
	)

	flag.Var(
		&stampInfoFile,
		"stamp_info_file",
		"Stamp info file path (repeatable)",
	)

	flag.Var(
		&valuesFiles,
		"values",
		"JSON, YAML or TOML values file (repeatable)",
	)

	flag.Var(
		&variable,
		"variable",
		"Variable in NAME=VALUE format (repeatable)",
	)

	flag.Var(
		&imports,
		"imports",
		"Import in NAME=filename format (repeatable)",
	)

	flag.StringVar(
		&output, "output", "",
		"Output file path (stdout if empty)",
	)

	flag.StringVar(
		&tpl, "template", "",
		"Input template file path (stdin if empty)",
	)

	flag.BoolVar(
		&executable, "executable", false,
		"Set executable bit on output file",
	)

	flag.BoolVar(
		&fragments, "fragments", false,
		"Write the fragment sequence as a JSON array",
	)

	flag.StringVar(
		&startTag, "start_tag", strtemplate.DefaultStartTag,
		"Start tag for template placeholders",
	)

	flag.StringVar(
		&endTag, "end_tag", strtemplate.DefaultEndTag,
		"End tag for template placeholders",
	)

	flag.Parse()

	en := templating.Engine{
		StartTag:       startTag,
		EndTag:         endTag,
		StampInfoFiles: stampInfoFile,
		ValuesFiles:    valuesFiles,
		Fragments:      fragments,
		Cache:          tplcache.New(),
	}

	if err := en.Expand(
		tpl, output, variable, imports, executable,
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
