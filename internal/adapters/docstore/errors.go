package docstore

import "errors"

// Sentinel errors for document access.
var (
	ErrNotFound = errors.New("document not found")
	ErrFetch    = errors.New("document fetch failed")
	ErrNoSource = errors.New("no document source configured")
)
