package templating

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/byte4ever/strtemplate/stamper"
	"github.com/byte4ever/strtemplate/strtemplate"
	"github.com/byte4ever/strtemplate/tplcache"
	"github.com/byte4ever/strtemplate/valuesfile"
)

// Engine expands templates using stamp info files, values
// files and explicit variables.
type Engine struct {
	StartTag       string
	EndTag         string
	StampInfoFiles []string
	ValuesFiles    []string

	// Fragments writes the filled fragment sequence as a
	// JSON array instead of the joined text.
	Fragments bool

	// Cache, when set, memoizes compiled templates across
	// Expand calls.
	Cache *tplcache.Cache
}

// Expand reads a template, substitutes variables, and
// writes the result. If outPath is empty it writes to
// stdout. If executable is true the output file receives
// mode 0777 instead of 0666.
//
// Processing order:
//  1. Load stamp files into a stamp map.
//  2. Load values files; their keys override stamps.
//  3. For each variable NAME=VALUE, stamp VALUE with
//     single-brace tags, then store it as both "NAME" and
//     "variables.NAME".
//  4. For each import NAME=filename, render the file
//     against the context with the configured tags, stamp
//     the result, and store it as "imports.NAME".
//  5. Render the template against the context.
//
// The stamp passes in steps 3 and 4 only run when stamp
// info files are configured.
func (en *Engine) Expand(
	tplPath string,
	outPath string,
	vars []string,
	imports []string,
	executable bool,
) error {
	const errCtx = "expanding template"

	ctx, err := en.Context(vars, imports)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tplContent, err := en.readTemplate(tplPath)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	tpl := en.compile(string(tplContent))

	slog.Debug(
		"template compiled",
		"template", tplPath,
		"placeholders", len(tpl.Placeholders()),
	)

	out, closer, err := en.openOutput(outPath, executable)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if closer != nil {
		defer closer()
	}

	if err := en.write(out, tpl, ctx); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// Context resolves the value context from stamps, values
// files, variables and imports, in that order of
// precedence (later wins).
func (en *Engine) Context(
	vars []string,
	imports []string,
) (strtemplate.Map, error) {
	const errCtx = "building context"

	stamps, err := stamper.LoadStamps(en.StampInfoFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ctx := make(strtemplate.Map, len(stamps))
	for key, val := range stamps {
		ctx[key] = val
	}

	overrides, err := valuesfile.LoadAll(en.ValuesFiles)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	for key, val := range overrides {
		ctx[key] = val
	}

	if err := en.resolveVars(vars, stamps, ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := en.resolveImports(imports, stamps, ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ctx, nil
}

// tags returns the configured start/end tags, falling
// back to the compiler defaults.
func (en *Engine) tags() (string, string) {
	startTag := en.StartTag
	if startTag == "" {
		startTag = strtemplate.DefaultStartTag
	}

	endTag := en.EndTag
	if endTag == "" {
		endTag = strtemplate.DefaultEndTag
	}

	return startTag, endTag
}

func (en *Engine) compile(source string) *strtemplate.Template {
	startTag, endTag := en.tags()

	opts := []strtemplate.Option{
		strtemplate.WithTags(startTag, endTag),
	}

	if en.Cache != nil {
		return en.Cache.Compile(source, opts...)
	}

	return strtemplate.Compile(source, opts...)
}

// resolveVars processes --variable flags. Each variable
// value is stamped, then stored as both "NAME" and
// "variables.NAME".
func (en *Engine) resolveVars(
	vars []string,
	stamps strtemplate.Map,
	ctx strtemplate.Map,
) error {
	const errCtx = "resolving variables"

	for _, vr := range vars {
		name, raw, ok := strings.Cut(vr, "=")
		if !ok {
			return fmt.Errorf(
				"%s: variable must be VAR=value, got %s",
				errCtx, vr,
			)
		}

		val := en.stamp(raw, stamps)

		ctx[name] = val
		ctx["variables."+name] = val
	}

	return nil
}

// resolveImports processes --imports flags. Each import
// file is rendered against ctx with the configured tags,
// then stamped, and stored as "imports.NAME".
func (en *Engine) resolveImports(
	imports []string,
	stamps strtemplate.Map,
	ctx strtemplate.Map,
) error {
	const errCtx = "resolving imports"

	for _, im := range imports {
		name, path, ok := strings.Cut(im, "=")
		if !ok {
			return fmt.Errorf(
				"%s: import must be NAME=filename, got %s",
				errCtx, im,
			)
		}

		content, err := os.ReadFile(path) //nolint:gosec // paths from CLI flags
		if err != nil {
			return fmt.Errorf(
				"%s: reading %s: %w",
				errCtx, path, err,
			)
		}

		val := en.compile(string(content)).Render(ctx)

		ctx["imports."+name] = en.stamp(val, stamps)
	}

	return nil
}

// stamp applies the single-brace stamp pass. Without stamp
// info files the text is returned untouched.
func (en *Engine) stamp(text string, stamps strtemplate.Map) string {
	if len(en.StampInfoFiles) == 0 {
		return text
	}

	return stamper.Format(text, stamps)
}

// write renders tpl into out, as text or as a JSON
// fragment array.
func (en *Engine) write(
	out io.Writer,
	tpl *strtemplate.Template,
	ctx strtemplate.Values,
) error {
	const errCtx = "writing output"

	if en.Fragments {
		if err := json.NewEncoder(out).Encode(
			tpl.Fragments(ctx),
		); err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		return nil
	}

	n, err := tpl.RenderTo(out, ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	slog.Debug("output written", "bytes", n)

	return nil
}

// readTemplate reads the template from a file path. If
// tplPath is empty it reads from stdin.
func (en *Engine) readTemplate(
	tplPath string,
) ([]byte, error) {
	const errCtx = "reading template"

	if tplPath != "" {
		content, err := os.ReadFile(tplPath) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		return content, nil
	}

	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf(
			"%s: reading stdin: %w", errCtx, err,
		)
	}

	return content, nil
}

// openOutput returns a writer for the result. When
// outPath is empty it returns stdout. The returned
// closer function must be called to finalize the file
// (may be nil for stdout).
func (en *Engine) openOutput(
	outPath string,
	executable bool,
) (io.Writer, func(), error) {
	const errCtx = "opening output"

	if outPath == "" {
		return os.Stdout, nil, nil
	}

	var perm os.FileMode = 0o666
	if executable {
		perm = 0o777
	}

	fi, err := os.OpenFile( //nolint:gosec // paths from CLI flags
		outPath,
		os.O_RDWR|os.O_CREATE|os.O_TRUNC,
		perm,
	)
	if err != nil {
		return nil, nil, fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return fi, func() {
		_ = fi.Close() //nolint:errcheck // best-effort close
	}, nil
}
