package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given a data directory", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()
		fsys := fstest.MapFS{
			"_list.json":     {Data: []byte(`["bloodbath"]`)},
			"bloodbath.json": {Data: []byte(`{"name":"Bloodbath"}`)},
		}

		Convey("When registering the site handler", func() {
			Register(ctx, mux, fsys)

			Convey("Then documents are served under /data/", func() {
				req := httptest.NewRequest(http.MethodGet, "/data/_list.json", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldEqual, `["bloodbath"]`)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")
				So(w.Header().Get("Cache-Control"), ShouldEqual, "no-cache")
			})

			Convey("And missing documents are 404", func() {
				req := httptest.NewRequest(http.MethodGet, "/data/sonic-wave.json", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})

			Convey("And it should not handle the root route", func() {
				req := httptest.NewRequest(http.MethodGet, "/", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})

		Convey("When no directory is configured", func() {
			Register(ctx, mux, nil)

			Convey("Then nothing is mounted", func() {
				req := httptest.NewRequest(http.MethodGet, "/data/_list.json", nil)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				So(w.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then registering should panic", func() {
			So(func() {
				Register(context.Background(), nil, fstest.MapFS{})
			}, ShouldPanic)
		})
	})
}
