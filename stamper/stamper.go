package stamper

import (
	"fmt"
	"os"
	"strings"

	"github.com/byte4ever/strtemplate/strtemplate"
)

// Stamp placeholder delimiters.
const (
	StartTag = "{"
	EndTag   = "}"
)

// LoadStamps reads workspace status files and merges them
// into a single map. Each line is "KEY VALUE" with the
// first space as delimiter. Lines without a space are
// silently skipped; later files override earlier ones.
func LoadStamps(
	infoFiles []string,
) (strtemplate.Map, error) {
	const errCtx = "loading stamps"

	stamps := make(strtemplate.Map)

	for _, sf := range infoFiles {
		content, err := os.ReadFile(sf) //nolint:gosec // paths from CLI flags
		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		for _, line := range strings.Split(
			string(content), "\n",
		) {
			key, val, ok := strings.Cut(line, " ")
			if ok {
				stamps[key] = val
			}
		}
	}

	return stamps, nil
}

// Format renders {VAR} placeholders in format from stamps.
// Unknown variables render as the empty string.
func Format(format string, stamps strtemplate.Values) string {
	return strtemplate.Compile(
		format, strtemplate.WithTags(StartTag, EndTag),
	).Render(stamps)
}

// Stamp loads workspace status variables from infoFiles
// and substitutes {VAR} placeholders in format.
func Stamp(
	infoFiles []string,
	format string,
) (string, error) {
	const errCtx = "stamping"

	stamps, err := LoadStamps(infoFiles)
	if err != nil {
		return "", fmt.Errorf(
			"%s: %w", errCtx, err,
		)
	}

	return Format(format, stamps), nil
}
