package ch

import (
	"os"
	"runtime"
	"strings"

	"recordkeeper/internal/core/version"

	"github.com/ClickHouse/clickhouse-go/v2"
)

type product = struct{ Name, Version string }

// clientInfo tags every connection so system.query_log can tell writers apart
// an empty tag falls back to the linked build version
func clientInfo(role, tag string) clickhouse.ClientInfo {
	b := version.Info()
	if strings.TrimSpace(tag) == "" {
		tag = b.Version
	}
	host, err := os.Hostname()
	if err != nil {
		host = "unknown"
	}
	ps := make([]product, 0, 5)
	for _, p := range [][2]string{
		{"recordkeeper", tag},
		{"role", role},
		{"commit", b.Commit},
		{"go", runtime.Version()},
		{"host", host},
	} {
		ps = append(ps, product{Name: p[0], Version: strings.TrimSpace(p[1])})
	}
	return clickhouse.ClientInfo{Products: ps}
}
