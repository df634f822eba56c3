// Package rules builds declarative per-request rule sets
//
// A Set owns an ordered list of field chains. Every chain is evaluated and all
// failures are collected, except that a chain marked Stop ends at its first
// failing rule. Struct tags can be folded in with Tags.
package rules

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"unicode/utf8"

	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/validation"

	"github.com/google/uuid"
)

// Length limits shared by record entities
const (
	MaxName        = 64
	MaxTitle       = 200
	MaxDescription = 512

	// MaxCapacity is the largest count a postgres integer column holds
	MaxCapacity = math.MaxInt32
)

// Failure is one failed rule
type Failure = perr.FieldFailure

type rule[T any] struct {
	ok  func(T) bool
	msg string
}

// Chain is the ordered rule list for one field
type Chain[T any] struct {
	set   *Set[T]
	field string
	stop  bool
	when  func(T) bool
	rules []rule[T]
}

// Set is a rule set for one request type
type Set[T any] struct {
	tags   bool
	chains []*Chain[T]
}

// For starts an empty rule set for T
func For[T any]() *Set[T] { return &Set[T]{} }

// Tags runs validate struct tags before the chains
// It panics when T is not a struct
func (s *Set[T]) Tags() *Set[T] {
	if t := reflect.TypeFor[T](); t.Kind() != reflect.Struct {
		panic(fmt.Sprintf("rules: struct tags need a struct request type, got %s", t))
	}
	s.tags = true
	return s
}

// Field opens a new chain reporting failures under name
func (s *Set[T]) Field(name string) *Chain[T] {
	c := &Chain[T]{set: s, field: name}
	s.chains = append(s.chains, c)
	return c
}

// Stop makes the chain end at its first failing rule
func (c *Chain[T]) Stop() *Chain[T] {
	c.stop = true
	return c
}

// When skips the whole chain unless cond holds
func (c *Chain[T]) When(cond func(T) bool) *Chain[T] {
	c.when = cond
	return c
}

// Must appends a rule; msg is reported when ok returns false
func (c *Chain[T]) Must(ok func(T) bool, msg string) *Chain[T] {
	c.rules = append(c.rules, rule[T]{ok: ok, msg: msg})
	return c
}

// Field opens the next chain on the parent set
func (c *Chain[T]) Field(name string) *Chain[T] { return c.set.Field(name) }

// Set returns the parent set
func (c *Chain[T]) Set() *Set[T] { return c.set }

// Validate implements mediator.Validator
func (s *Set[T]) Validate(v T) []Failure {
	var out []Failure
	if s.tags {
		fs, err := validation.Struct(v)
		if err != nil {
			// Tags only accepts struct types
			panic(err)
		}
		out = append(out, fs...)
	}
	for _, c := range s.chains {
		if c.when != nil && !c.when(v) {
			continue
		}
		for _, r := range c.rules {
			if r.ok(v) {
				continue
			}
			out = append(out, Failure{Field: c.field, Message: r.msg})
			if c.stop {
				break
			}
		}
	}
	return out
}

// Predicates

// Present reports a non-nil uuid
func Present[T any](get func(T) uuid.UUID) func(T) bool {
	return func(v T) bool { return get(v) != uuid.Nil }
}

// NotBlank reports a string with at least one non-space rune
func NotBlank[T any](get func(T) string) func(T) bool {
	return func(v T) bool { return strings.TrimSpace(get(v)) != "" }
}

// MaxLen reports a string of at most n runes
func MaxLen[T any](get func(T) string, n int) func(T) bool {
	return func(v T) bool { return utf8.RuneCountInString(get(v)) <= n }
}

// AtLeast reports an int of at least n
func AtLeast[T any](get func(T) int, n int) func(T) bool {
	return func(v T) bool { return get(v) >= n }
}

// AtMost reports an int of at most n
func AtMost[T any](get func(T) int, n int) func(T) bool {
	return func(v T) bool { return get(v) <= n }
}

// Requires reports that dependent is unset or that parent is set
// It expresses hierarchy chains such as "a folder needs a locker"
func Requires[T any](dependent, parent func(T) *uuid.UUID) func(T) bool {
	return func(v T) bool { return dependent(v) == nil || parent(v) != nil }
}

// OptionalPresent reports an unset optional id, or a set one that is non-nil
func OptionalPresent[T any](get func(T) *uuid.UUID) func(T) bool {
	return func(v T) bool {
		p := get(v)
		return p == nil || *p != uuid.Nil
	}
}
