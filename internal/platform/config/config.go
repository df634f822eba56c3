// Package config reads settings from environment variables under namespaced prefixes
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"recordkeeper/internal/platform/logger"
)

// Conf is a view over the environment under a prefix such as "SERVICE_PGSQL_"
type Conf struct{ prefix string }

// New is the unprefixed view
func New() Conf { return Conf{} }

// Prefix nests p under the current prefix
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) (string, string) {
	k := c.prefix + key
	return k, strings.TrimSpace(os.Getenv(k))
}

// MustString is the value of key; a missing value panics at startup
func (c Conf) MustString(key string) string {
	k, v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", k).Msg("missing required env")
	}
	return v
}

// MayString is the value of key, or def when blank
func (c Conf) MayString(key, def string) string {
	if _, v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// MayInt is key parsed as an int, or def when blank or invalid
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool is key parsed by strconv.ParseBool, or def when blank or invalid
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration is key parsed by time.ParseDuration, or def when blank or invalid
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits key on commas dropping blanks, or def when nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	_, v := c.lookup(key)
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// may parses key, warning and falling back to def on a bad value
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	k, v := c.lookup(key)
	if v == "" {
		return def
	}
	out, err := parse(v)
	if err != nil {
		logger.Get().Warn().Str("key", k).Str("value", v).Interface("default", def).Msg("invalid env value; using default")
		return def
	}
	return out
}
