// Package httpkit is what domain modules mount routes with
// modules import it instead of the platform transport packages
package httpkit

import (
	"net/http"

	"recordkeeper/internal/platform/config"
	phttp "recordkeeper/internal/platform/net/http"
	"recordkeeper/internal/platform/net/middleware"
)

type (
	// Envelope is the response body
	Envelope = phttp.Envelope
	// Response is what handlers may return to pick a status
	Response = phttp.Response
	// Handler is a plain route handler
	Handler = phttp.Handler
	// Router is the routing surface
	Router = phttp.Router
)

// Created is a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent is a 204 response
func NoContent() Response { return phttp.NoContent() }

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, phttp.NoBody(h)) }

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) {
	r.Delete(path, phttp.NoBody(h))
}

// PostJSON mounts a handler taking a JSON body of T under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}

// PutJSON mounts a handler taking a JSON body of T under PUT
func PutJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Put(path, phttp.JSONHandler(h))
}

// CommonStack is the middleware chain for the API scope, tuned by cfg
func CommonStack(cfg config.Conf) []func(http.Handler) http.Handler {
	return middleware.Stack(middleware.FromConfig(cfg))
}

// MountAPIV1 scopes mount under /api/v1 behind mw
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/v1", func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}

// Protected mounts fn's routes behind bearer authentication
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(middleware.Auth(p))
		fn(g)
	})
}
