// Package middleware assembles the request middleware chain around chi and go-chi/cors
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	"recordkeeper/internal/platform/config"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Options tunes the common stack
type Options struct {
	// Timeout cancels a request's context after this long
	Timeout time.Duration
	// Slow marks access log lines at warn from this elapsed time, 0 disables
	Slow time.Duration
	// Origins allowed by CORS; empty allows none
	Origins []string
}

// FromConfig reads REQUEST_TIMEOUT, SLOW_REQUEST and CORS_ORIGINS
func FromConfig(cfg config.Conf) Options {
	return Options{
		Timeout: cfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second),
		Slow:    cfg.MayDuration("SLOW_REQUEST", 500*time.Millisecond),
		Origins: cfg.MayCSV("CORS_ORIGINS", nil),
	}
}

// Stack is the chain every API route runs behind, outermost first
func Stack(o Options) []func(http.Handler) http.Handler {
	chain := []func(http.Handler) http.Handler{
		chimw.RequestID,
		chimw.RealIP,
		AccessLog(o.Slow),
		Recover,
		chimw.NoCache,
		CORS(o.Origins),
		chimw.Compress(flate.BestSpeed),
		chimw.StripSlashes,
	}
	if o.Timeout > 0 {
		chain = append(chain, chimw.Timeout(o.Timeout))
	}
	return chain
}

// CORS allows origins to call the API with a bearer token
func CORS(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	})
}
