// Package module mounts the meta endpoints
package module

import (
	"time"

	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	metahttp "recordkeeper/internal/services/api/meta/http"
)

// New builds the meta module; it registers no requests
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	d := metahttp.Deps{
		ServiceName: "recordkeeper-api",
		StartedAt:   time.Now(),
	}
	if p, ok := deps.PG.(metahttp.Pinger); ok {
		d.PG = p
	}
	if p, ok := deps.CH.(metahttp.Pinger); ok {
		d.CH = p
	}
	if deps.Bus != nil {
		d.Requests = deps.Bus.Requests
	}
	return modkit.New("meta", "/meta", nil, func(r httpkit.Router) { metahttp.Register(r, d) }, opts...)
}
