package mediator

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/authz"
	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/logger"
	pnet "recordkeeper/internal/platform/net"
)

// Stage names the pipeline step a request reached
type Stage string

// Pipeline stages, in order
const (
	StageValidate  Stage = "validate"
	StageAuthorize Stage = "authorize"
	StageEvaluate  Stage = "evaluate"
	StageHandle    Stage = "handle"
)

// maxDepth bounds requirement sub-dispatch nesting
const maxDepth = 4

type depthKey struct{}

// Mediator dispatches requests through the pipeline
// It holds no per-request state and is safe for concurrent use
type Mediator struct {
	reg     *Registry
	log     *logger.Logger
	auditor authz.Auditor
	now     func() time.Time
}

// New builds a mediator over a fully populated registry
func New(reg *Registry, opts ...Option) *Mediator {
	if reg == nil {
		panic("mediator: nil registry")
	}
	m := &Mediator{
		reg:     reg,
		log:     logger.Named("mediator"),
		auditor: authz.Discard,
		now:     time.Now,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Send dispatches req and returns the handler's result unchanged
// Errors are *perr.Error values: Validation, Forbidden, NotFound (from handlers)
// or Internal; cancellation surfaces as Unavailable wrapping ctx.Err()
func Send[Res, Req any](ctx context.Context, m *Mediator, req Req) (Res, error) {
	var zero Res
	out, err := m.Dispatch(ctx, req)
	if err != nil {
		return zero, err
	}
	if out == nil {
		return zero, nil
	}
	res, ok := out.(Res)
	if !ok {
		err := perr.Internalf("mediator: %T returned %T, caller expected %s", req, out, reflect.TypeFor[Res]())
		m.internal(ctx, StageHandle, typeName(req), err)
		return zero, err
	}
	return res, nil
}

// Requests lists the request types this mediator can dispatch
// The registry may still be filling up while modules are built
func (m *Mediator) Requests() []string { return m.reg.Requests() }

// Dispatch runs the untyped pipeline for req
func (m *Mediator) Dispatch(ctx context.Context, req any) (any, error) {
	name := typeName(req)
	if err := live(ctx); err != nil {
		return nil, err
	}

	t := reflect.TypeOf(req)
	h, ok := m.reg.handlers[t]
	if !ok {
		err := perr.Internalf("mediator: no handler registered for %s", name)
		m.internal(ctx, StageHandle, name, err)
		return nil, err
	}

	// validate
	var failures []perr.FieldFailure
	for _, v := range m.reg.validators[t] {
		failures = append(failures, v(req)...)
	}
	if len(failures) > 0 {
		m.log.Info().
			Str("request_id", pnet.RequestID(ctx)).
			Str("request", name).
			Int("failures", len(failures)).
			Str("first_field", failures[0].Field).
			Msg("request rejected by validation")
		return nil, perr.Validation(failures)
	}

	// authorize
	if err := m.authorize(ctx, t, name, req); err != nil {
		return nil, err
	}

	if err := live(ctx); err != nil {
		return nil, err
	}
	out, err := h(ctx, req)
	if err != nil {
		// nested evaluator failures are logged once by the caller
		if nested(ctx) == 0 && perr.IsInternal(perr.CodeOf(err)) && !perr.IsCode(err, perr.ErrorCodeUnavailable) {
			m.internal(ctx, StageHandle, name, err)
		}
		return nil, err
	}
	return out, nil
}

func (m *Mediator) authorize(ctx context.Context, t reflect.Type, name string, req any) error {
	as := m.reg.authorizers[t]
	if len(as) == 0 {
		return nil
	}

	var all []authz.Requirement
	for _, a := range as {
		all = append(all, a(req)...)
	}
	for _, r := range all {
		if !authz.Comparable(r) {
			err := perr.Internalf("mediator: %s declared non-comparable requirement %T", name, r)
			m.internal(ctx, StageAuthorize, name, err)
			return err
		}
	}
	reqs := authz.Dedup(all)
	if len(reqs) == 0 {
		return nil
	}

	depth := nested(ctx)
	if depth >= maxDepth {
		err := perr.Internalf("mediator: requirement nesting too deep at %s", name)
		m.internal(ctx, StageEvaluate, name, err)
		return err
	}
	sub := context.WithValue(ctx, depthKey{}, depth+1)

	for _, r := range reqs {
		if err := live(ctx); err != nil {
			return err
		}
		res, err := m.evaluate(sub, r)
		if err != nil {
			if perr.IsCode(err, perr.ErrorCodeUnavailable) {
				return err
			}
			err = perr.WithOp(err, r.Kind())
			m.internal(ctx, StageEvaluate, name, err)
			return err
		}
		m.audit(ctx, name, r, res)
		if !res.Authorized {
			reason := res.Reason
			if reason == "" {
				reason = fmt.Sprintf("%s requirement not met", r.Kind())
			}
			m.log.Info().
				Str("request_id", pnet.RequestID(ctx)).
				Str("request", name).
				Str("requirement", r.Kind()).
				Str("reason", reason).
				Msg("request denied")
			return perr.Forbidden(reason)
		}
	}
	return nil
}

// evaluate sub-dispatches r to its evaluator through the same pipeline
func (m *Mediator) evaluate(ctx context.Context, r authz.Requirement) (authz.Result, error) {
	t := reflect.TypeOf(r)
	if _, ok := m.reg.handlers[t]; !ok {
		return authz.Result{}, perr.Internalf("mediator: no evaluator registered for %s", t)
	}
	out, err := m.Dispatch(ctx, r)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeUnavailable) {
			return authz.Result{}, err
		}
		if perr.IsInternal(perr.CodeOf(err)) {
			return authz.Result{}, err
		}
		return authz.Result{}, perr.Wrapf(err, perr.ErrorCodeInternal, "mediator: evaluator for %s failed", t)
	}
	res, ok := out.(authz.Result)
	if !ok {
		return authz.Result{}, perr.Internalf("mediator: evaluator for %s returned %T", t, out)
	}
	return res, nil
}

func (m *Mediator) audit(ctx context.Context, name string, r authz.Requirement, res authz.Result) {
	d := authz.Decision{
		At:          m.now(),
		RequestID:   pnet.RequestID(ctx),
		Request:     name,
		Kind:        r.Kind(),
		Requirement: fmt.Sprintf("%+v", r),
		Authorized:  res.Authorized,
		Reason:      res.Reason,
	}
	if a, ok := actor.From(ctx); ok {
		d.ActorID = a.UserID
	}
	m.auditor.Record(ctx, d)
}

func (m *Mediator) internal(ctx context.Context, stage Stage, name string, err error) {
	m.log.Error().
		Err(err).
		Str("request_id", pnet.RequestID(ctx)).
		Str("request", name).
		Str("stage", string(stage)).
		Str("op", opOf(err)).
		Msg("request failed")
}

// live maps a finished context to an Unavailable error that still matches
// context.Canceled / context.DeadlineExceeded through errors.Is
func live(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "request cancelled")
	}
	return nil
}

func nested(ctx context.Context) int {
	d, _ := ctx.Value(depthKey{}).(int)
	return d
}

func opOf(err error) string {
	if e, ok := perr.As(err); ok {
		return e.Op()
	}
	return ""
}

func typeName(v any) string {
	if v == nil {
		return "<nil>"
	}
	return reflect.TypeOf(v).String()
}
