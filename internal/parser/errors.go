package parser

import "errors"

var (
	ErrMalformedDocument = errors.New("malformed import document")
	ErrEmptyDocument     = errors.New("import document contains no records")
)
