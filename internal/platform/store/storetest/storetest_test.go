package storetest

import (
	"context"
	"errors"
	"testing"

	"recordkeeper/internal/platform/store"
)

func TestInlineTx(t *testing.T) {
	db := &InlineTx{}
	ran := false
	if err := db.Tx(context.Background(), func(q store.RowQuerier) error {
		ran = true
		_, err := q.Exec(context.Background(), "SELECT 1")
		if !errors.Is(err, ErrNoSQL) {
			t.Fatalf("Exec = %v", err)
		}
		return nil
	}); err != nil || !ran || db.Txs != 1 {
		t.Fatalf("Tx = %v ran=%v txs=%d", err, ran, db.Txs)
	}

	boom := errors.New("boom")
	db.Fail = boom
	if err := db.Tx(context.Background(), func(store.RowQuerier) error { t.Fatal("body ran"); return nil }); err != boom {
		t.Fatalf("Fail not returned: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	db.Fail = nil
	if err := db.Tx(ctx, func(store.RowQuerier) error { return nil }); !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled ctx = %v", err)
	}
}
