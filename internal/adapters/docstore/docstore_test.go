package docstore_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/SaQreeZ/SaQreeZ-Challenge-List/internal/adapters/docstore"
	. "github.com/smartystreets/goconvey/convey"
)

func TestDirStore(t *testing.T) {
	Convey("Given a file system with a manifest", t, func() {
		fsys := fstest.MapFS{
			"_list.json":     {Data: []byte(`["bloodbath"]`)},
			"bloodbath.json": {Data: []byte(`{"name":"Bloodbath"}`)},
		}
		store := docstore.NewFS(fsys)
		ctx := context.Background()

		Convey("When fetching an existing document", func() {
			body, err := store.Fetch(ctx, docstore.ListDocument)

			Convey("Then the raw body is returned", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, `["bloodbath"]`)
			})
		})

		Convey("When fetching a missing document", func() {
			_, err := store.Fetch(ctx, "sonic-wave")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, docstore.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the name escapes the root", func() {
			_, err := store.Fetch(ctx, "../secret")

			Convey("Then it is rejected as a fetch error", func() {
				So(errors.Is(err, docstore.ErrFetch), ShouldBeTrue)
			})
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			_, err := store.Fetch(cctx, docstore.ListDocument)

			Convey("Then it fails without reading", func() {
				So(errors.Is(err, docstore.ErrFetch), ShouldBeTrue)
			})
		})
	})
}

func TestHTTPStore(t *testing.T) {
	Convey("Given an HTTP data source", t, func() {
		mux := http.NewServeMux()
		mux.HandleFunc("/data/_list.json", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`["a","b"]`))
		})
		mux.HandleFunc("/data/broken.json", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		mux.HandleFunc("/data/slow.json", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
		var nestedPath string
		mux.HandleFunc("/data/packs/", func(w http.ResponseWriter, r *http.Request) {
			nestedPath = r.URL.Path
			if r.URL.Path != "/data/packs/my level.json" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			_, _ = w.Write([]byte(`{"name":"My Level"}`))
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		store, err := docstore.NewHTTPStore(srv.URL+"/data", docstore.WithTimeout(100*time.Millisecond))
		So(err, ShouldBeNil)
		ctx := context.Background()

		Convey("When fetching the manifest", func() {
			body, err := store.Fetch(ctx, docstore.ListDocument)

			Convey("Then the body is returned", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, `["a","b"]`)
			})
		})

		Convey("When the document does not exist", func() {
			_, err := store.Fetch(ctx, "missing")

			Convey("Then it reports not found", func() {
				So(errors.Is(err, docstore.ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When the name has a space and a directory", func() {
			body, err := store.Fetch(ctx, "packs/my level")

			Convey("Then the path is escaped exactly once", func() {
				So(err, ShouldBeNil)
				So(nestedPath, ShouldEqual, "/data/packs/my level.json")
				So(string(body), ShouldEqual, `{"name":"My Level"}`)
			})
		})

		Convey("When the name escapes the base", func() {
			_, err := store.Fetch(ctx, "../secret")

			Convey("Then it is rejected before any request", func() {
				So(errors.Is(err, docstore.ErrFetch), ShouldBeTrue)
			})
		})

		Convey("When the server fails", func() {
			_, err := store.Fetch(ctx, "broken")

			Convey("Then it reports a fetch error", func() {
				So(errors.Is(err, docstore.ErrFetch), ShouldBeTrue)
				So(errors.Is(err, docstore.ErrNotFound), ShouldBeFalse)
			})
		})

		Convey("When the server is slower than the timeout", func() {
			start := time.Now()
			_, err := store.Fetch(ctx, "slow")

			Convey("Then the request is abandoned", func() {
				So(errors.Is(err, docstore.ErrFetch), ShouldBeTrue)
				So(time.Since(start), ShouldBeLessThan, time.Second)
			})
		})
	})
}

func TestOpen(t *testing.T) {
	Convey("Given different source strings", t, func() {
		Convey("An http URL opens an HTTP store", func() {
			s, err := docstore.Open("https://example.com/data")
			So(err, ShouldBeNil)
			_, ok := s.(*docstore.HTTPStore)
			So(ok, ShouldBeTrue)
		})

		Convey("A path opens a directory store", func() {
			s, err := docstore.Open(t.TempDir())
			So(err, ShouldBeNil)
			_, ok := s.(*docstore.DirStore)
			So(ok, ShouldBeTrue)
		})

		Convey("An empty source is rejected", func() {
			_, err := docstore.Open("  ")
			So(errors.Is(err, docstore.ErrNoSource), ShouldBeTrue)
		})
	})
}
