// Package module wires departments, staff and users into the API
package module

import (
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/modkit/repokit"

	ohttp "recordkeeper/internal/services/api/organization/http"
	orepo "recordkeeper/internal/services/api/organization/repo"
	osvc "recordkeeper/internal/services/api/organization/service"
)

// Ports exposes the request registrations of this module
type Ports struct {
	Registrar mediator.Registrar
}

// New builds the organization module, mounted under /organization unless opts say otherwise
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	if deps.Bus == nil {
		panic("organization module requires deps.Bus")
	}
	tx := repokit.TxFromConfig(deps.Cfg.Prefix("RECORDS_"))
	svc := osvc.New(tx.Wrap(deps.PG), orepo.NewPG(), osvc.Options{TxAttempts: tx.Attempts})

	return modkit.New("organization", "/organization", Ports{Registrar: svc}, func(r httpkit.Router) {
		ohttp.Register(r, deps.Bus)
	}, opts...)
}
