// Package storetest provides store seams for repository-free service tests
package storetest

import (
	"context"
	"errors"

	"recordkeeper/internal/platform/store"
)

// ErrNoSQL is returned by every statement sent to InlineTx
var ErrNoSQL = errors.New("storetest: statements are not supported")

// InlineTx is a store.TxRunner that runs Tx bodies inline
// services under test bind in-memory repos, so statements never reach it
type InlineTx struct {
	// Txs counts Tx calls
	Txs int
	// Fail, when set, is returned by Tx without running the body
	Fail error
}

var _ store.TxRunner = (*InlineTx)(nil)

// Exec implements store.RowQuerier
func (f *InlineTx) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, ErrNoSQL
}

// Query implements store.RowQuerier
func (f *InlineTx) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, ErrNoSQL
}

// QueryRow implements store.RowQuerier
func (f *InlineTx) QueryRow(context.Context, string, ...any) store.Row { return errRow{} }

// Tx implements store.TxRunner
func (f *InlineTx) Tx(ctx context.Context, fn func(q store.RowQuerier) error) error {
	f.Txs++
	if f.Fail != nil {
		return f.Fail
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(f)
}

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoSQL }
