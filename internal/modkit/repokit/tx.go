package repokit

import (
	"context"
	"fmt"
	"time"

	"recordkeeper/internal/platform/config"
	"recordkeeper/internal/platform/store"
)

// TxOptions bounds the transactions a service runs
type TxOptions struct {
	// Attempts is the total number of tries for retryable failures
	Attempts int
	// StatementTimeout applies SET LOCAL statement_timeout when > 0
	StatementTimeout time.Duration
}

// TxFromConfig reads TX_ATTEMPTS and STATEMENT_TIMEOUT from c
func TxFromConfig(c config.Conf) TxOptions {
	return TxOptions{
		Attempts:         c.MayInt("TX_ATTEMPTS", 3),
		StatementTimeout: c.MayDuration("STATEMENT_TIMEOUT", 5*time.Second),
	}
}

// Wrap returns db with o's settings applied at the start of every transaction
func (o TxOptions) Wrap(db TxRunner) TxRunner {
	if db == nil || o.StatementTimeout <= 0 {
		return db
	}
	return timedTx{TxRunner: db, set: fmt.Sprintf("SET LOCAL statement_timeout = %d", o.StatementTimeout.Milliseconds())}
}

// timedTx sets a local statement timeout before fn; statements outside Tx pass through untouched
type timedTx struct {
	TxRunner
	set string
}

func (t timedTx) Tx(ctx context.Context, fn func(store.RowQuerier) error) error {
	return t.TxRunner.Tx(ctx, func(q store.RowQuerier) error {
		if _, err := q.Exec(ctx, t.set); err != nil {
			return err
		}
		return fn(q)
	})
}
