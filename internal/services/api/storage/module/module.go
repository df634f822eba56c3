// Package module wires lockers and folders into the API
package module

import (
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/modkit/repokit"

	shttp "recordkeeper/internal/services/api/storage/http"
	srepo "recordkeeper/internal/services/api/storage/repo"
	ssvc "recordkeeper/internal/services/api/storage/service"
)

// Ports exposes the request registrations of this module
type Ports struct {
	Registrar mediator.Registrar
}

// New builds the storage module, mounted under /storage unless opts say otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Bus == nil {
		panic("storage module requires deps.Bus")
	}
	tx := repokit.TxFromConfig(deps.Cfg.Prefix("RECORDS_"))
	svc := ssvc.New(tx.Wrap(deps.PG), srepo.NewPG(), ssvc.Options{TxAttempts: tx.Attempts})

	return modkit.New("storage", "/storage", Ports{Registrar: svc}, func(r httpkit.Router) {
		shttp.Register(r, deps.Bus)
	}, opts...)
}
