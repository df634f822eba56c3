// Package logger owns the process zerolog logger and its request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"recordkeeper/internal/platform/config/raw"
	pnet "recordkeeper/internal/platform/net"

	"github.com/rs/zerolog"
)

// Logger is zerolog's logger; packages take it by value
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level      string
	Format     string // "console" or "json"
	Service    string
	WithCaller bool
	Writer     io.Writer // stdout when nil
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE and LOG_CALLER
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:      env.Get("LEVEL", "info"),
		Format:     env.Get("FORMAT", "console"),
		Service:    env.Get("SERVICE", "recordkeeper"),
		WithCaller: env.GetBool("CALLER", false),
	}
}

var root atomic.Pointer[Logger]

// New builds a logger from opt without installing it
func New(opt Options) Logger {
	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	lvl, err := zerolog.ParseLevel(opt.Level)
	if err != nil || opt.Level == "" {
		lvl = zerolog.InfoLevel
	}

	c := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.WithCaller {
		c = c.Caller()
	}
	return c.Logger()
}

// Init installs the root logger; later calls replace it
func Init(opt Options) {
	zerolog.TimeFieldFormat = time.RFC3339Nano
	l := New(opt)
	root.Store(&l)
}

// Get is the root logger, built from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	l := New(FromEnv())
	if root.CompareAndSwap(nil, &l) {
		return &l
	}
	return root.Load()
}

// Named is a child of the root tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

// C is a child of the root carrying the request and user ids on ctx
func C(ctx context.Context) *Logger {
	c := Get().With()
	if id := pnet.RequestID(ctx); id != "" {
		c = c.Str("request_id", id)
	}
	if id := pnet.UserID(ctx); id != "" {
		c = c.Str("user_id", id)
	}
	l := c.Logger()
	return &l
}
