// Package module wires the authorization auditors
package module

import (
	"context"

	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/modkit"
	"recordkeeper/internal/modkit/httpkit"
	"recordkeeper/internal/platform/logger"
	"recordkeeper/internal/services/audit/service"
)

// Ports exposed by the audit module
type Ports struct {
	Auditor authz.Auditor
}

// Module picks the auditor set from config; it has no routes
type Module struct {
	ports Ports
	batch *service.Batch
}

// New constructs the audit module
// With auditing on, decisions are logged and, when deps.CH is set, also batched to ClickHouse
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)
	if !opts.Enabled {
		return &Module{ports: Ports{Auditor: authz.Discard}}
	}

	log := service.Log(logger.Named("authz-audit"))
	if deps.CH == nil {
		return &Module{ports: Ports{Auditor: log}}
	}
	b := service.NewBatch(deps.CH, service.BatchConfig{
		Table:      opts.Table,
		Size:       opts.BatchSize,
		FlushEvery: opts.FlushEvery,
		Buffer:     opts.Buffer,
	})
	return &Module{ports: Ports{Auditor: service.Tee(log, b)}, batch: b}
}

// Run drives the ClickHouse writer until ctx ends; without one it returns at once
func (m *Module) Run(ctx context.Context) error {
	if m.batch == nil {
		return nil
	}
	return m.batch.Run(ctx)
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return "audit" }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(httpkit.Router) {}
