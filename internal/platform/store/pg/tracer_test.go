package pg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	pnet "recordkeeper/internal/platform/net"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

type line struct {
	Level     string `json:"level"`
	Slow      bool   `json:"slow"`
	SQL       string `json:"sql"`
	Args      int    `json:"args"`
	Rows      int64  `json:"rows"`
	Error     string `json:"error"`
	RequestID string `json:"request_id"`
	Component string `json:"component"`
}

func trace(ctx context.Context, t *testing.T, tr *Tracer, buf *bytes.Buffer, step time.Duration, end pgx.TraceQueryEndData) line {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tr.now = func() time.Time { return base }
	ctx = tr.TraceQueryStart(ctx, nil, pgx.TraceQueryStartData{
		SQL:  "SELECT id\n\t FROM rooms\n WHERE id = $1",
		Args: []any{"secret-title"},
	})
	tr.now = func() time.Time { return base.Add(step) }
	buf.Reset()
	tr.TraceQueryEnd(ctx, nil, end)

	var l line
	if err := json.Unmarshal(buf.Bytes(), &l); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	return l
}

func TestTracer_Levels(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf).Level(zerolog.ErrorLevel), 50*time.Millisecond)

	l := trace(context.Background(), t, tr, &buf, time.Millisecond, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
	if l.Level != "debug" || l.Slow {
		t.Fatalf("fast statement: %+v", l)
	}
	if l.SQL != "SELECT id FROM rooms WHERE id = $1" || l.Args != 1 || l.Rows != 1 || l.Component != "pg" {
		t.Fatalf("fields: %+v", l)
	}
	if bytes.Contains(buf.Bytes(), []byte("secret-title")) {
		t.Fatal("argument values must not be logged")
	}

	l = trace(context.Background(), t, tr, &buf, 80*time.Millisecond, pgx.TraceQueryEndData{})
	if l.Level != "warn" || !l.Slow {
		t.Fatalf("slow statement: %+v", l)
	}

	l = trace(context.Background(), t, tr, &buf, time.Millisecond, pgx.TraceQueryEndData{Err: errors.New("boom")})
	if l.Level != "info" || l.Error != "boom" {
		t.Fatalf("failed statement: %+v", l)
	}
}

func TestTracer_RequestID(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf), 0)
	ctx := pnet.WithRequest(context.Background(), "req-7", "")

	l := trace(ctx, t, tr, &buf, time.Hour, pgx.TraceQueryEndData{})
	if l.RequestID != "req-7" {
		t.Fatalf("request id = %q", l.RequestID)
	}
	if l.Slow {
		t.Fatal("zero threshold never marks slow")
	}
}

func TestTracer_EndWithoutStartIsSilent(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTracer(zerolog.New(&buf), 0)
	tr.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if buf.Len() != 0 {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
