package resolver

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// DecodeAllDocsForTest decodes all YAML documents from raw
// bytes into a slice, skipping empty documents.
func DecodeAllDocsForTest(raw []byte) ([]any, error) {
	const errCtx = "decoding all docs"

	decoder := yaml.NewDecoder(bytes.NewReader(raw))

	var docs []any

	for {
		var doc any

		err := decoder.Decode(&doc)
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf(
				"%s: %w", errCtx, err,
			)
		}

		if doc == nil {
			continue
		}

		docs = append(docs, doc)
	}

	return docs, nil
}
