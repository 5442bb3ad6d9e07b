// Package parser decodes bulk-import documents. Parsing is strict: unknown
// keys and type mismatches fail the whole document instead of being skipped.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/ta4ilka/route-atlas/models"
)

// ParseImportDocument reads a YAML import document from r. Every parse
// problem, including unknown fields anywhere in the document, is reported as
// [ErrMalformedDocument]. A document with no records at all is rejected with
// [ErrEmptyDocument].
func ParseImportDocument(r io.Reader) (models.ImportDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var doc models.ImportDocument
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return models.ImportDocument{}, ErrEmptyDocument
		}
		return models.ImportDocument{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	// A second document in the same stream is not supported.
	if err := decoder.Decode(&struct{}{}); err == nil {
		return models.ImportDocument{}, fmt.Errorf("%w: multiple documents in stream", ErrMalformedDocument)
	} else if !errors.Is(err, io.EOF) {
		return models.ImportDocument{}, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}

	if len(doc.Coordinates) == 0 && len(doc.Locations) == 0 && len(doc.Routes) == 0 {
		return models.ImportDocument{}, ErrEmptyDocument
	}

	return doc, nil
}

// ParseImportDocumentBytes is a convenience wrapper over ParseImportDocument.
func ParseImportDocumentBytes(data []byte) (models.ImportDocument, error) {
	return ParseImportDocument(bytes.NewReader(data))
}
