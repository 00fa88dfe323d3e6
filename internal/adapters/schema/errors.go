package schema

import "errors"

var (
	// ErrMalformed is returned when a document is not valid JSON.
	ErrMalformed = errors.New("malformed document")
	// ErrSchema is returned when a document does not match its schema.
	ErrSchema = errors.New("schema violation")
	// ErrUnknownKind is returned for a kind without a definition.
	ErrUnknownKind = errors.New("unknown document kind")
)
