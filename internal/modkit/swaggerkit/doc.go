// Package swaggerkit provides OpenAPI swagger UI integration for HTTP services
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
	"sync"

	phttp "recordkeeper/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

var (
	mu    sync.RWMutex
	paths = map[string][]string{}
)

// Describe records the methods served under path so the generated OpenAPI document lists them
func Describe(path string, methods ...string) {
	mu.Lock()
	defer mu.Unlock()
	for _, m := range methods {
		paths[path] = append(paths[path], strings.ToLower(m))
	}
}

// docJSON renders a minimal OpenAPI document from the described paths
func docJSON() []byte {
	mu.RLock()
	defer mu.RUnlock()

	keys := make([]string, 0, len(paths))
	for p := range paths {
		keys = append(keys, p)
	}
	sort.Strings(keys)

	out := map[string]any{}
	for _, p := range keys {
		ops := map[string]any{}
		for _, m := range paths[p] {
			ops[m] = map[string]any{"responses": map[string]any{"default": map[string]any{"description": "envelope"}}}
		}
		out[p] = ops
	}
	b, _ := json.Marshal(map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "Recordkeeper API", "version": "0.1.0"},
		"paths":   out,
	})
	return b
}

// serveDocJSON serves the generated skeleton so the UI can load
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_, _ = w.Write(docJSON())
	}
}

// DescribeRoutes walks the chi mux behind r and describes every /api route
func DescribeRoutes(r phttp.Router) {
	mux, ok := r.Mux().(chi.Routes)
	if !ok {
		return
	}
	_ = chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if strings.HasPrefix(route, "/api/v1/") {
			Describe(strings.TrimSuffix(route, "/"), method)
		}
		return nil
	})
}
