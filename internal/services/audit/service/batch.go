package service

import (
	"context"
	"sync/atomic"
	"time"

	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/platform/logger"
)

// Sink is the columnar write seam; store.Clickhouse satisfies it
type Sink interface {
	Insert(ctx context.Context, table string, rows [][]any) error
}

// BatchConfig sizes the ClickHouse writer
type BatchConfig struct {
	Table      string
	Size       int
	FlushEvery time.Duration
	Buffer     int
}

// flushGrace bounds the final flush after the run context ends
const flushGrace = 5 * time.Second

// Batch buffers decisions and writes them in batches from Run
// Record never blocks; decisions arriving while the buffer is full are dropped and counted
type Batch struct {
	sink    Sink
	cfg     BatchConfig
	in      chan authz.Decision
	dropped atomic.Int64
	log     *logger.Logger
}

// NewBatch builds a writer over sink; Run must be started for anything to be written
func NewBatch(sink Sink, cfg BatchConfig) *Batch {
	if sink == nil {
		panic("audit.Batch requires a non nil sink")
	}
	cfg.Size = max(cfg.Size, 1)
	cfg.Buffer = max(cfg.Buffer, cfg.Size)
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = 2 * time.Second
	}
	if cfg.Table == "" {
		cfg.Table = "authz_decisions"
	}
	return &Batch{
		sink: sink,
		cfg:  cfg,
		in:   make(chan authz.Decision, cfg.Buffer),
		log:  logger.Named("authz-audit"),
	}
}

// Record implements authz.Auditor
func (b *Batch) Record(_ context.Context, d authz.Decision) {
	select {
	case b.in <- d:
	default:
		b.dropped.Add(1)
	}
}

// Dropped reports how many decisions were discarded on a full buffer
func (b *Batch) Dropped() int64 { return b.dropped.Load() }

// Run writes batches until ctx ends, then flushes what is buffered
func (b *Batch) Run(ctx context.Context) error {
	t := time.NewTicker(b.cfg.FlushEvery)
	defer t.Stop()

	buf := make([][]any, 0, b.cfg.Size)
	for {
		select {
		case <-ctx.Done():
			buf = b.drain(buf)
			fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushGrace)
			b.flush(fctx, buf)
			cancel()
			return ctx.Err()
		case d := <-b.in:
			buf = append(buf, row(d))
			if len(buf) >= b.cfg.Size {
				buf = b.flush(ctx, buf)
			}
		case <-t.C:
			buf = b.flush(ctx, buf)
		}
	}
}

func (b *Batch) drain(buf [][]any) [][]any {
	for {
		select {
		case d := <-b.in:
			buf = append(buf, row(d))
		default:
			return buf
		}
	}
}

func (b *Batch) flush(ctx context.Context, buf [][]any) [][]any {
	if len(buf) == 0 {
		return buf
	}
	if err := b.sink.Insert(ctx, b.cfg.Table, buf); err != nil {
		b.log.Warn().Err(err).Str("table", b.cfg.Table).Int("rows", len(buf)).Msg("audit batch dropped")
	}
	return buf[:0]
}

// row lists values in authz_decisions column order
func row(d authz.Decision) []any {
	return []any{d.At, d.RequestID, d.ActorID, d.Request, d.Kind, d.Requirement, d.Authorized, d.Reason}
}
