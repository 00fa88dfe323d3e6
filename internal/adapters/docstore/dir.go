package docstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// DirStore reads documents from a file system.
type DirStore struct {
	fsys fs.FS
}

// NewDir creates a store over the directory at root.
func NewDir(root string) *DirStore {
	return &DirStore{fsys: os.DirFS(root)}
}

// NewFS creates a store over an arbitrary file system.
func NewFS(fsys fs.FS) *DirStore {
	return &DirStore{fsys: fsys}
}

// FS exposes the underlying file system.
func (s *DirStore) FS() fs.FS { return s.fsys }

// Fetch implements Store.
func (s *DirStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, name, err)
	}
	p := fileName(name)
	if !fs.ValidPath(p) || path.IsAbs(p) {
		return nil, fmt.Errorf("%w: %s: invalid document name", ErrFetch, name)
	}
	body, err := fs.ReadFile(s.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, name, err)
	}
	return body, nil
}
