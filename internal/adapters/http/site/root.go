// Package site serves the list's data directory so the server can act as
// its own document store.
package site

import (
	"context"
	"io/fs"
	"net/http"
)

// Prefix is the URL path the data directory is mounted under.
const Prefix = "/data/"

// Register mounts fsys under /data/. Documents are served read-only with
// revalidation on every request, since the list is edited in place.
func Register(_ context.Context, mux *http.ServeMux, fsys fs.FS) {
	if mux == nil {
		panic("mux is nil")
	}
	if fsys == nil {
		return
	}
	mux.Handle("GET "+Prefix, NewHandler(fsys))
}

// NewHandler returns the file handler without registering it.
func NewHandler(fsys fs.FS) http.Handler {
	files := http.StripPrefix(Prefix[:len(Prefix)-1], http.FileServerFS(fsys))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Access-Control-Allow-Origin", "*")
		files.ServeHTTP(w, r)
	})
}
