// Package module wires documents and their search into the API
package module

import (
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/modkit/repokit"

	dhttp "recordkeeper/internal/services/api/documents/http"
	drepo "recordkeeper/internal/services/api/documents/repo"
	dsvc "recordkeeper/internal/services/api/documents/service"
)

// Ports exposes the request registrations of this module
type Ports struct {
	Registrar mediator.Registrar
}

// New builds the documents module, mounted under /documents unless opts say otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Bus == nil {
		panic("documents module requires deps.Bus")
	}
	tx := repokit.TxFromConfig(deps.Cfg.Prefix("RECORDS_"))
	svc := dsvc.New(tx.Wrap(deps.PG), drepo.NewPG(), dsvc.Options{TxAttempts: tx.Attempts})

	return modkit.New("documents", "/documents", Ports{Registrar: svc}, func(r httpkit.Router) {
		dhttp.Register(r, deps.Bus)
	}, opts...)
}
