package mediator

import (
	"time"

	"recordkeeper/internal/core/authz"
	"recordkeeper/internal/platform/logger"
)

// Option configures a Mediator
type Option func(*Mediator)

// WithLogger sets the logger used for rejections and internal failures
func WithLogger(l *logger.Logger) Option {
	return func(m *Mediator) {
		if l != nil {
			m.log = l
		}
	}
}

// WithAuditor reports every evaluated requirement to a
func WithAuditor(a authz.Auditor) Option {
	return func(m *Mediator) {
		if a != nil {
			m.auditor = a
		}
	}
}

// WithClock overrides time.Now for audit timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Mediator) {
		if now != nil {
			m.now = now
		}
	}
}
