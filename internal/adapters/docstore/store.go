// Package docstore reads JSON documents from the static data store.
package docstore

import (
	"context"
	"strings"
)

// Well-known document names.
const (
	ListDocument    = "_list"
	EditorsDocument = "_editors"
	PacksDocument   = "_packs"

	extension = ".json"
)

// Store fetches raw documents by name, without the .json extension.
type Store interface {
	// Fetch returns the document body. Missing documents wrap ErrNotFound;
	// any other failure wraps ErrFetch.
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// Open returns an HTTPStore for http(s) sources and a DirStore rooted at
// source otherwise.
func Open(source string, opts ...Option) (Store, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrNoSource
	}
	lower := strings.ToLower(source)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return NewHTTPStore(source, opts...)
	}
	return NewDir(source), nil
}

func fileName(name string) string {
	return name + extension
}
