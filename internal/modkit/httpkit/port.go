package httpkit

import (
	"context"
	"net/http"
	"strings"

	"recordkeeper/internal/core/actor"
	perr "recordkeeper/internal/platform/errors"
	pnet "recordkeeper/internal/platform/net"
)

// TokenFunc turns a raw bearer token into the calling actor
type TokenFunc func(token string) (actor.Actor, error)

// Port authenticates requests from their Authorization header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port over fn
func NewPortFunc(fn TokenFunc) *Port { return &Port{parse: fn} }

// Parse resolves the actor behind "Bearer <token>"
// every failure is Unauthorized; the parser's own error is not exposed
func (p *Port) Parse(r *http.Request) (actor.Actor, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	token = strings.TrimSpace(token)
	if !strings.EqualFold(scheme, "bearer") || token == "" {
		return actor.Actor{}, perr.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return actor.Actor{}, perr.Unauthorizedf("invalid bearer token")
	}
	a, err := p.parse(token)
	if err != nil || a.Check() != nil {
		return actor.Actor{}, perr.Unauthorizedf("invalid bearer token")
	}
	return a, nil
}

// Authenticate returns r's context carrying the actor and its user id
func (p *Port) Authenticate(r *http.Request) (context.Context, error) {
	a, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return actor.With(pnet.WithUser(r.Context(), a.UserID.String()), a), nil
}
