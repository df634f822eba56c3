// Package authz defines the authorization vocabulary shared by request
// authorizers and requirement evaluators
//
// A Requirement is a comparable value that states one condition the caller
// must satisfy. Authorizers only declare requirements; evaluators decide them.
// Two requirements are the same requirement when their values are equal, so
// every variant must be a plain struct of comparable fields.
package authz

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

// Requirement is one declarative authorization condition
type Requirement interface {
	// Kind is a stable short name used in logs and audit rows
	Kind() string
}

// Result is the outcome of evaluating one requirement
type Result struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason,omitempty"`
}

// Allow is the authorized result
func Allow() Result { return Result{Authorized: true} }

// Deny is a denied result with a human readable reason
func Deny(reason string) Result { return Result{Reason: reason} }

// Denyf is Deny with formatting
func Denyf(format string, a ...any) Result { return Deny(fmt.Sprintf(format, a...)) }

// Comparable reports whether r can take part in value deduplication
func Comparable(r Requirement) bool {
	if r == nil {
		return false
	}
	return reflect.TypeOf(r).Comparable()
}

// Dedup returns the distinct requirements of rs in first-seen order
// Callers must check Comparable first; a non-comparable value panics on ==
func Dedup(rs []Requirement) []Requirement {
	out := make([]Requirement, 0, len(rs))
next:
	for _, r := range rs {
		for _, seen := range out {
			if seen == r {
				continue next
			}
		}
		out = append(out, r)
	}
	return out
}

// Decision is one evaluated requirement, reported to an Auditor
type Decision struct {
	At          time.Time
	RequestID   string
	ActorID     uuid.UUID
	Request     string
	Kind        string
	Requirement string
	Authorized  bool
	Reason      string
}

// Auditor receives every evaluated requirement
// Implementations must not fail the request; errors are theirs to log
type Auditor interface {
	Record(ctx context.Context, d Decision)
}

// AuditorFunc adapts a function to Auditor
type AuditorFunc func(ctx context.Context, d Decision)

// Record implements Auditor
func (f AuditorFunc) Record(ctx context.Context, d Decision) { f(ctx, d) }

// Discard drops every decision
var Discard Auditor = AuditorFunc(func(context.Context, Decision) {})
