// Package mediator routes every command and query through one pipeline:
// validators, then authorizers and requirement evaluators, then the handler
//
// Registrations are keyed by the run-time type of the request value and are
// made explicitly at startup; there is no package-level registry. A Registry
// is written once while the process boots and only read afterwards.
package mediator

import (
	"context"
	"fmt"
	"reflect"
	"sort"

	"recordkeeper/internal/core/authz"
	perr "recordkeeper/internal/platform/errors"
)

type (
	handlerFunc    func(ctx context.Context, req any) (any, error)
	validatorFunc  func(req any) []perr.FieldFailure
	authorizerFunc func(req any) []authz.Requirement
)

// HandlerFunc handles one request type
type HandlerFunc[Req, Res any] func(ctx context.Context, req Req) (Res, error)

// ValidatorFunc returns every rule failure for one request
type ValidatorFunc[Req any] func(req Req) []perr.FieldFailure

// AuthorizerFunc declares the requirements a request must satisfy
type AuthorizerFunc[Req any] func(req Req) []authz.Requirement

// EvaluatorFunc decides one requirement kind for the caller on ctx
type EvaluatorFunc[Q authz.Requirement] func(ctx context.Context, q Q) (authz.Result, error)

// Validator is implemented by rule sets
type Validator[Req any] interface {
	Validate(req Req) []perr.FieldFailure
}

// Registrar is the port a module exposes to contribute registrations
type Registrar interface {
	Register(r *Registry)
}

// RegistrarFunc adapts a function to Registrar
type RegistrarFunc func(r *Registry)

// Register implements Registrar
func (f RegistrarFunc) Register(r *Registry) { f(r) }

// Registry maps request types to their handler, validators and authorizers
type Registry struct {
	handlers    map[reflect.Type]handlerFunc
	validators  map[reflect.Type][]validatorFunc
	authorizers map[reflect.Type][]authorizerFunc
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{
		handlers:    map[reflect.Type]handlerFunc{},
		validators:  map[reflect.Type][]validatorFunc{},
		authorizers: map[reflect.Type][]authorizerFunc{},
	}
}

// Install applies each registrar in order
func (r *Registry) Install(rs ...Registrar) *Registry {
	for _, x := range rs {
		if x != nil {
			x.Register(r)
		}
	}
	return r
}

// Handle registers the single handler for Req
// Registering a second handler for the same type panics at startup
func Handle[Req, Res any](r *Registry, h HandlerFunc[Req, Res]) {
	t := reflect.TypeFor[Req]()
	if h == nil {
		panic(fmt.Sprintf("mediator: nil handler for %s", t))
	}
	if _, dup := r.handlers[t]; dup {
		panic(fmt.Sprintf("mediator: duplicate handler for %s", t))
	}
	r.handlers[t] = func(ctx context.Context, req any) (any, error) {
		return h(ctx, req.(Req))
	}
}

// Evaluate registers the evaluator for requirement kind Q
// Evaluators are ordinary handlers returning authz.Result
func Evaluate[Q authz.Requirement](r *Registry, e EvaluatorFunc[Q]) {
	if !reflect.TypeFor[Q]().Comparable() {
		panic(fmt.Sprintf("mediator: requirement %s is not comparable", reflect.TypeFor[Q]()))
	}
	Handle[Q, authz.Result](r, HandlerFunc[Q, authz.Result](e))
}

// Validate appends a validator for Req; all validators run
func Validate[Req any](r *Registry, v ValidatorFunc[Req]) {
	t := reflect.TypeFor[Req]()
	r.validators[t] = append(r.validators[t], func(req any) []perr.FieldFailure {
		return v(req.(Req))
	})
}

// ValidateWith appends a rule set implementing Validator
func ValidateWith[Req any](r *Registry, v Validator[Req]) {
	Validate[Req](r, v.Validate)
}

// Authorize appends an authorizer for Req; requirement sets are unioned
func Authorize[Req any](r *Registry, a AuthorizerFunc[Req]) {
	t := reflect.TypeFor[Req]()
	r.authorizers[t] = append(r.authorizers[t], func(req any) []authz.Requirement {
		return a(req.(Req))
	})
}

// Require returns an authorizer that declares the same requirements for every
// value of Req
func Require[Req any](rs ...authz.Requirement) AuthorizerFunc[Req] {
	return func(Req) []authz.Requirement {
		out := make([]authz.Requirement, len(rs))
		copy(out, rs)
		return out
	}
}

// Requests lists the registered request type names, sorted
func (r *Registry) Requests() []string {
	out := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t.String())
	}
	sort.Strings(out)
	return out
}

// Orphans lists request types with validators or authorizers but no handler
func (r *Registry) Orphans() []string {
	seen := map[string]bool{}
	for t := range r.validators {
		if _, ok := r.handlers[t]; !ok {
			seen[t.String()] = true
		}
	}
	for t := range r.authorizers {
		if _, ok := r.handlers[t]; !ok {
			seen[t.String()] = true
		}
	}
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
