// Package modkit builds API modules from shared dependencies
package modkit

import (
	"recordkeeper/internal/core/mediator"
	"recordkeeper/internal/modkit/repokit"
	"recordkeeper/internal/platform/config"
	"recordkeeper/internal/platform/logger"
	"recordkeeper/internal/platform/store"
)

// Deps is what every module constructor receives
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	CH  store.Clickhouse

	// Bus dispatches requests through the shared pipeline
	// modules register into its registry through their Registrar port
	Bus *mediator.Mediator
}
