package module

import (
	"time"

	"recordkeeper/internal/platform/config"
)

// Options controls decision auditing
type Options struct {
	Enabled    bool
	Table      string
	BatchSize  int
	FlushEvery time.Duration
	Buffer     int
}

// FromConfig reads AUTHZ_AUDIT and the SERVICE_CLICKHOUSE_AUDIT_* knobs
func FromConfig(cfg config.Conf) Options {
	ch := cfg.Prefix("SERVICE_CLICKHOUSE_AUDIT_")
	return Options{
		Enabled:    cfg.Prefix("AUTHZ_").MayBool("AUDIT", true),
		Table:      ch.MayString("TABLE", "authz_decisions"),
		BatchSize:  ch.MayInt("BATCH", 500),
		FlushEvery: ch.MayDuration("FLUSH", 2*time.Second),
		Buffer:     ch.MayInt("BUFFER", 4096),
	}
}
