package middleware

import (
	"context"
	"net/http"

	phttp "recordkeeper/internal/platform/net/http"
)

// AuthPort resolves the caller of a request
// Authenticate returns r's context extended with the caller
type AuthPort interface {
	Authenticate(r *http.Request) (context.Context, error)
}

// Auth rejects requests p cannot authenticate with an error envelope
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, err := p.Authenticate(r)
			if err != nil {
				phttp.WriteError(w, r, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
