// Package module exposes the ownership reader used by the access evaluators
package module

import (
	"recordkeeper/internal/core/access"
	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/services/ownership/repo"
)

// Ports exposed by the ownership module
type Ports struct {
	Reader access.OwnershipReader
}

// Module has no routes; it only provides ports
type Module struct {
	ports Ports
}

// New constructs the ownership module over deps.PG
func New(deps modkit.Deps) *Module {
	if deps.PG == nil {
		panic("ownership module requires deps.PG")
	}
	return &Module{ports: Ports{Reader: repo.NewPG(deps.PG)}}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "ownership" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
