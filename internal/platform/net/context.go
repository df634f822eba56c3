// Package net carries request scoped identifiers across transport and logging
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type userKey struct{}

// WithRequest returns ctx carrying reqID and userID; empty values are skipped
// the request id shares chi's key so RequestID middleware and tests agree
func WithRequest(ctx context.Context, reqID, userID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	return WithUser(ctx, userID)
}

// WithUser returns ctx carrying the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userKey{}, userID)
}

// RequestID is the id chi's RequestID middleware assigned, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// UserID is the authenticated user id, or ""
func UserID(ctx context.Context) string {
	s, _ := ctx.Value(userKey{}).(string)
	return s
}
