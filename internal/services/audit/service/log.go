// Package service records authorization decisions to logs and ClickHouse
package service

import (
	"context"

	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/platform/logger"

	"github.com/rs/zerolog"
)

// Log returns an auditor that writes each decision to l
// denials log at info, grants at debug
func Log(l *logger.Logger) authz.Auditor {
	return authz.AuditorFunc(func(_ context.Context, d authz.Decision) {
		var ev *zerolog.Event
		if d.Authorized {
			ev = l.Debug()
		} else {
			ev = l.Info().Str("reason", d.Reason)
		}
		ev.Str("request_id", d.RequestID).
			Str("actor_id", d.ActorID.String()).
			Str("request", d.Request).
			Str("kind", d.Kind).
			Str("requirement", d.Requirement).
			Bool("authorized", d.Authorized).
			Msg("authz decision")
	})
}

// Tee fans each decision out to every auditor in order
func Tee(as ...authz.Auditor) authz.Auditor {
	return authz.AuditorFunc(func(ctx context.Context, d authz.Decision) {
		for _, a := range as {
			a.Record(ctx, d)
		}
	})
}
