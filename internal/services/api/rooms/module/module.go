// Package module wires rooms and their capacity into the API
package module

import (
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/modkit/repokit"

	rhttp "recordkeeper/internal/services/api/rooms/http"
	rrepo "recordkeeper/internal/services/api/rooms/repo"
	rsvc "recordkeeper/internal/services/api/rooms/service"
)

// Ports exposes the request registrations of this module
type Ports struct {
	Registrar mediator.Registrar
}

// New builds the rooms module, mounted under /rooms unless opts say otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Bus == nil {
		panic("rooms module requires deps.Bus")
	}
	tx := repokit.TxFromConfig(deps.Cfg.Prefix("RECORDS_"))
	svc := rsvc.New(tx.Wrap(deps.PG), rrepo.NewPG(), rsvc.Options{TxAttempts: tx.Attempts})

	return modkit.New("rooms", "/rooms", Ports{Registrar: svc}, func(r httpkit.Router) {
		rhttp.Register(r, deps.Bus)
	}, opts...)
}
