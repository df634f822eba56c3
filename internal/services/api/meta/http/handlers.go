// Package http serves the unauthenticated meta endpoints
package http

import (
	"context"
	"net/http"
	"time"

	"recordkeeper/internal/core/version"
	"recordkeeper/internal/modkit/httpkit"
)

// Pinger is a backend the readiness probe can check
type Pinger interface {
	Ping(context.Context) error
}

// Deps are what the meta endpoints report on
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger // required for readiness
	CH          Pinger // optional audit sink
	// Requests lists the request types the dispatcher handles
	Requests func() []string
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d, probe: 2 * time.Second}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/requests", h.requests)
}

type handlers struct {
	deps  Deps
	probe time.Duration
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool      `json:"ok"             example:"true"`
	Service string    `json:"service"        example:"recordkeeper-api"`
	Started time.Time `json:"started"        example:"2026-03-02T09:00:00Z"`
	Uptime  int64     `json:"uptime_seconds" example:"300"`
}

// ReadyCheck is one backend's probe result: ok, fail or skipped
type ReadyCheck struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"connection refused"`
}

// ReadyResponse is ok, degraded (audit sink down) or fail (postgres down)
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
}

// RequestsResponse lists the dispatchable request types
type RequestsResponse struct {
	Count    int      `json:"count"    example:"35"`
	Requests []string `json:"requests" example:"domain.AddRoom"`
}

// @Summary Liveness
// @Tags meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC(),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Readiness with backend checks
// @Tags meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.probe)
	defer cancel()

	pg := probe(ctx, "pg", h.deps.PG)
	ch := probe(ctx, "ch", h.deps.CH)

	status := "ok"
	switch {
	case pg.Status != "ok":
		status = "fail"
	case ch.Status == "fail":
		status = "degraded"
	}
	return ReadyResponse{Status: status, Checks: []ReadyCheck{pg, ch}}, nil
}

func probe(ctx context.Context, name string, p Pinger) ReadyCheck {
	if p == nil {
		return ReadyCheck{Name: name, Status: "skipped"}
	}
	if err := p.Ping(ctx); err != nil {
		return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
	}
	return ReadyCheck{Name: name, Status: "ok"}
}

// @Summary Build info
// @Tags meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Request types the dispatcher handles
// @Tags meta
// @Produce json
// @Success 200 {object} RequestsResponse
// @Router /meta/requests [get]
func (h *handlers) requests(*http.Request) (any, error) {
	out := []string{}
	if h.deps.Requests != nil {
		out = append(out, h.deps.Requests()...)
	}
	return RequestsResponse{Count: len(out), Requests: out}, nil
}
