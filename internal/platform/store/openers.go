package store

import (
	"context"
	"fmt"
	"time"

	chx "recordkeeper/internal/platform/store/ch"
	"recordkeeper/internal/platform/store/pg"
)

const (
	backoffStart   = 150 * time.Millisecond
	backoffCeiling = 2 * time.Second
)

// openPG builds the pool and waits until postgres answers
func openPG(ctx context.Context, cfg PGConfig, s *Store) (*pgAdapter, error) {
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.URL,
		MaxConns: cfg.MaxConns,
		LogSQL:   cfg.LogSQL,
		Slow:     time.Duration(cfg.SlowQueryMs) * time.Millisecond,
	}, s.Log)
	if err != nil {
		return nil, err
	}
	a := newPGAdapter(pool)
	if err := waitReady(ctx, a, cfg.retries(), cfg.pingTimeout()); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

// waitReady pings p with doubling backoff until it answers or attempts run out
func waitReady(ctx context.Context, p Pinger, attempts int, timeout time.Duration) error {
	var err error
	wait := backoffStart
	for i := 1; ; i++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		err = p.Ping(pctx)
		cancel()
		if err == nil {
			return nil
		}
		if i >= attempts {
			return fmt.Errorf("postgres ping failed after %d attempts: %w", attempts, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, backoffCeiling)
	}
}

func openCH(ctx context.Context, cfg CHConfig) (*chx.CH, error) {
	return chx.Open(ctx, chx.Config{
		URL:         cfg.URL,
		Role:        cfg.Role,
		Tag:         cfg.Tag,
		DialTimeout: cfg.DialTimeout,
	})
}
