package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func TestAdaptChiRoutesAndGroups(t *testing.T) {
	mux := chi.NewRouter()
	r := AdaptChi(mux)

	var hits []string
	mark := func(name string) Handler {
		return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			hits = append(hits, name)
			w.WriteHeader(stdhttp.StatusNoContent)
		}
	}
	r.Route("/rooms", func(rr Router) {
		rr.Get("/", mark("list"))
		rr.Post("/", mark("add"))
		rr.Group(func(g Router) {
			g.Use(func(next stdhttp.Handler) stdhttp.Handler {
				return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
					hits = append(hits, "mw")
					next.ServeHTTP(w, req)
				})
			})
			g.Put("/{id}", mark("update"))
			g.Delete("/{id}", mark("remove"))
		})
		if rr.Mux() != stdhttp.Handler(mux) {
			t.Fatal("subrouter Mux must be the root")
		}
	})

	for _, c := range []struct{ method, path string }{
		{stdhttp.MethodGet, "/rooms/"},
		{stdhttp.MethodPost, "/rooms/"},
		{stdhttp.MethodPut, "/rooms/1"},
		{stdhttp.MethodDelete, "/rooms/1"},
	} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != stdhttp.StatusNoContent {
			t.Fatalf("%s %s = %d", c.method, c.path, rec.Code)
		}
	}
	want := []string{"list", "add", "mw", "update", "mw", "remove"}
	if len(hits) != len(want) {
		t.Fatalf("hits = %v", hits)
	}
	for i := range want {
		if hits[i] != want[i] {
			t.Fatalf("hits = %v", hits)
		}
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/rooms/1", nil))
	if rec.Code != stdhttp.StatusMethodNotAllowed {
		t.Fatalf("GET outside group = %d", rec.Code)
	}
}
