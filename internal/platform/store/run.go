package store

import (
	"context"

	perr "recordkeeper/internal/platform/errors"
)

// RunTx calls fn inside a transaction on tx
// serialization failures and deadlocks are retried up to attempts times in total
func RunTx(ctx context.Context, tx TxRunner, attempts int, fn func(ctx context.Context, q RowQuerier) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for i := 0; i < attempts; i++ {
		err = tx.Tx(ctx, func(q RowQuerier) error {
			return fn(ctx, q)
		})
		if err == nil || !perr.Retryable(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}
