// Package pg opens the postgres pool recordkeeper repos run on
package pg

import (
	"context"
	"time"

	"recordkeeper/internal/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config configures the pool
type Config struct {
	URL      string
	MaxConns int32
	// LogSQL installs the statement tracer
	LogSQL bool
	// Slow marks statements at or above this duration; zero disables the mark
	Slow time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg.URL and builds a pool; connections are made lazily
func Open(ctx context.Context, cfg Config, log logger.Logger) (*pgxpool.Pool, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if cfg.LogSQL {
		pcfg.ConnConfig.Tracer = NewTracer(log, cfg.Slow)
	}
	return newPool(ctx, pcfg)
}
