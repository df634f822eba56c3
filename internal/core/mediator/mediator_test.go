package mediator

import (
	"context"
	"errors"
	"testing"
	"time"

	"recordkeeper/internal/core/actor"
	"recordkeeper/internal/core/authz"
	perr "recordkeeper/internal/platform/errors"
	kit "recordkeeper/internal/platform/testkit"

	"github.com/google/uuid"
)

type (
	updateLocker struct {
		LockerID uuid.UUID
		Capacity int
	}
	lockerView struct {
		ID       uuid.UUID
		Capacity int
	}
	getDepartment struct{ ID uuid.UUID }
	ping          struct{}

	adminOnly  struct{}
	slowCheck  struct{ N int }
	tagsCheck  struct{ Tags []string }
	neverMatch struct{}
)

func (adminOnly) Kind() string  { return "admin_only" }
func (slowCheck) Kind() string  { return "slow_check" }
func (tagsCheck) Kind() string  { return "tags_check" }
func (neverMatch) Kind() string { return "never_match" }

func adminCtx() context.Context {
	return actor.With(context.Background(), actor.Actor{UserID: uuid.New(), Role: actor.RoleAdmin})
}

type counter struct{ n int }

func (c *counter) lockerHandler() HandlerFunc[updateLocker, lockerView] {
	return func(_ context.Context, q updateLocker) (lockerView, error) {
		c.n++
		return lockerView{ID: q.LockerID, Capacity: q.Capacity}, nil
	}
}

func TestValidationFailureStopsPipeline(t *testing.T) {
	reg := NewRegistry()
	var h counter
	evals := 0
	Handle(reg, h.lockerHandler())
	Validate(reg, func(q updateLocker) []perr.FieldFailure {
		if q.Capacity < 0 {
			return []perr.FieldFailure{{Field: "capacity", Message: "Capacity must be non-negative"}}
		}
		return nil
	})
	Validate(reg, func(q updateLocker) []perr.FieldFailure {
		if q.LockerID == uuid.Nil {
			return []perr.FieldFailure{{Field: "lockerId", Message: "locker id is required"}}
		}
		return nil
	})
	Authorize(reg, func(updateLocker) []authz.Requirement { return []authz.Requirement{adminOnly{}} })
	Evaluate(reg, func(context.Context, adminOnly) (authz.Result, error) {
		evals++
		return authz.Allow(), nil
	})

	m := New(reg)
	_, err := Send[lockerView](adminCtx(), m, updateLocker{Capacity: -1})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("want validation error, got %v", err)
	}
	fs := perr.FailuresOf(err)
	if len(fs) != 2 || fs[0].Message != "Capacity must be non-negative" || fs[1].Field != "lockerId" {
		t.Fatalf("failures = %+v", fs)
	}
	if h.n != 0 {
		t.Fatalf("handler ran %d times", h.n)
	}
	if evals != 0 {
		t.Fatalf("authorization ran before validation passed")
	}
}

func TestNoRegistrationsPassThrough(t *testing.T) {
	reg := NewRegistry()
	var h counter
	Handle(reg, h.lockerHandler())
	m := New(reg)

	id := uuid.New()
	got, err := Send[lockerView](context.Background(), m, updateLocker{LockerID: id, Capacity: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.n != 1 {
		t.Fatalf("handler ran %d times, want 1", h.n)
	}
	if got.ID != id || got.Capacity != 3 {
		t.Fatalf("result changed in transit: %+v", got)
	}
}

func TestDuplicateRequirementEvaluatedOnce(t *testing.T) {
	reg := NewRegistry()
	var h counter
	calls := map[string]int{}
	Handle(reg, h.lockerHandler())
	Authorize(reg, func(updateLocker) []authz.Requirement {
		return []authz.Requirement{authz.HasRole{Role: actor.RoleAdmin}}
	})
	Authorize(reg, func(updateLocker) []authz.Requirement {
		return []authz.Requirement{authz.HasRole{Role: actor.RoleAdmin}, adminOnly{}}
	})
	Evaluate(reg, func(_ context.Context, q authz.HasRole) (authz.Result, error) {
		calls["role:"+string(q.Role)]++
		return authz.Allow(), nil
	})
	Evaluate(reg, func(context.Context, adminOnly) (authz.Result, error) {
		calls["admin_only"]++
		return authz.Allow(), nil
	})

	if _, err := Send[lockerView](adminCtx(), New(reg), updateLocker{LockerID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls["role:admin"] != 1 || calls["admin_only"] != 1 {
		t.Fatalf("evaluator calls = %v", calls)
	}
	if h.n != 1 {
		t.Fatalf("handler ran %d times", h.n)
	}
}

func TestDenialBlocksHandlerFirstFailWins(t *testing.T) {
	reg := NewRegistry()
	var h counter
	evaluated := []int{}
	Handle(reg, h.lockerHandler())
	Authorize(reg, func(updateLocker) []authz.Requirement {
		return []authz.Requirement{slowCheck{N: 1}, slowCheck{N: 2}, slowCheck{N: 3}}
	})
	Evaluate(reg, func(_ context.Context, q slowCheck) (authz.Result, error) {
		evaluated = append(evaluated, q.N)
		if q.N >= 2 {
			return authz.Denyf("check %d failed", q.N), nil
		}
		return authz.Allow(), nil
	})

	var audited []authz.Decision
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	m := New(reg,
		WithClock(func() time.Time { return at }),
		WithAuditor(authz.AuditorFunc(func(_ context.Context, d authz.Decision) {
			audited = append(audited, d)
		})),
	)

	_, err := Send[lockerView](adminCtx(), m, updateLocker{LockerID: uuid.New()})
	if !perr.IsCode(err, perr.ErrorCodeForbidden) {
		t.Fatalf("want forbidden, got %v", err)
	}
	if perr.MessageOf(err) != "check 2 failed" {
		t.Fatalf("message = %q", perr.MessageOf(err))
	}
	if h.n != 0 {
		t.Fatalf("handler ran after denial")
	}
	if len(evaluated) != 2 || evaluated[0] != 1 || evaluated[1] != 2 {
		t.Fatalf("evaluation order = %v", evaluated)
	}
	if len(audited) != 2 || audited[1].Authorized || audited[1].Kind != "slow_check" {
		t.Fatalf("audit = %+v", audited)
	}
	if audited[0].Request != "mediator.updateLocker" {
		t.Fatalf("audit request name = %q", audited[0].Request)
	}
	if !audited[0].At.Equal(at) {
		t.Fatalf("audit time = %v", audited[0].At)
	}
}

func TestDenialWithoutReasonGetsDefault(t *testing.T) {
	reg := NewRegistry()
	Handle(reg, func(context.Context, ping) (string, error) { return "pong", nil })
	Authorize(reg, func(ping) []authz.Requirement { return []authz.Requirement{neverMatch{}} })
	Evaluate(reg, func(context.Context, neverMatch) (authz.Result, error) { return authz.Result{}, nil })

	_, err := Send[string](context.Background(), New(reg), ping{})
	if perr.MessageOf(err) != "never_match requirement not met" {
		t.Fatalf("message = %q", perr.MessageOf(err))
	}
}

func TestNotFoundFromHandlerSurfaces(t *testing.T) {
	reg := NewRegistry()
	Handle(reg, func(_ context.Context, q getDepartment) (string, error) {
		return "", perr.NotFoundf("department %s not found", q.ID)
	})
	_, err := Send[string](adminCtx(), New(reg), getDepartment{ID: uuid.New()})
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestQueryIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	state := map[uuid.UUID]string{}
	id := uuid.New()
	state[id] = "Archives"
	Handle(reg, func(_ context.Context, q getDepartment) (string, error) {
		v, ok := state[q.ID]
		if !ok {
			return "", perr.ErrNotFound
		}
		return v, nil
	})
	Authorize(reg, func(getDepartment) []authz.Requirement { return []authz.Requirement{adminOnly{}} })
	Evaluate(reg, func(context.Context, adminOnly) (authz.Result, error) { return authz.Allow(), nil })

	m := New(reg)
	ctx := adminCtx()
	a, err1 := Send[string](ctx, m, getDepartment{ID: id})
	b, err2 := Send[string](ctx, m, getDepartment{ID: id})
	if err1 != nil || err2 != nil || a != b || a != "Archives" {
		t.Fatalf("results differ: %q %v / %q %v", a, err1, b, err2)
	}
}

func TestMissingEvaluatorIsInternal(t *testing.T) {
	reg := NewRegistry()
	var h counter
	Handle(reg, h.lockerHandler())
	Authorize(reg, func(updateLocker) []authz.Requirement { return []authz.Requirement{adminOnly{}} })

	_, err := Send[lockerView](adminCtx(), New(reg), updateLocker{})
	if !perr.IsCode(err, perr.ErrorCodeInternal) {
		t.Fatalf("want internal, got %v", err)
	}
	if w := perr.WireFrom(err); w.Message != "internal error" {
		t.Fatalf("internal detail leaked: %+v", w)
	}
	if h.n != 0 {
		t.Fatalf("handler ran")
	}
}

func TestEvaluatorErrorIsInternal(t *testing.T) {
	reg := NewRegistry()
	Handle(reg, func(context.Context, ping) (string, error) { return "pong", nil })
	Authorize(reg, func(ping) []authz.Requirement { return []authz.Requirement{adminOnly{}} })
	Evaluate(reg, func(context.Context, adminOnly) (authz.Result, error) {
		return authz.Result{}, perr.NotFoundf("lookup failed")
	})
	_, err := Send[string](context.Background(), New(reg), ping{})
	if !perr.IsCode(err, perr.ErrorCodeInternal) {
		t.Fatalf("want internal, got %v", err)
	}
	if e, _ := perr.As(err); e.Op() != "admin_only" {
		t.Fatalf("op = %q", e.Op())
	}
}

func TestMissingHandlerIsInternal(t *testing.T) {
	_, err := Send[string](context.Background(), New(NewRegistry()), ping{})
	if !perr.IsCode(err, perr.ErrorCodeInternal) {
		t.Fatalf("want internal, got %v", err)
	}
}

func TestNonComparableRequirementIsInternal(t *testing.T) {
	reg := NewRegistry()
	Handle(reg, func(context.Context, ping) (string, error) { return "pong", nil })
	Authorize(reg, func(ping) []authz.Requirement { return []authz.Requirement{tagsCheck{Tags: []string{"a"}}} })
	_, err := Send[string](context.Background(), New(reg), ping{})
	if !perr.IsCode(err, perr.ErrorCodeInternal) {
		t.Fatalf("want internal, got %v", err)
	}
}

func TestWrongResultTypeIsInternal(t *testing.T) {
	reg := NewRegistry()
	Handle(reg, func(context.Context, ping) (string, error) { return "pong", nil })
	_, err := Send[int](context.Background(), New(reg), ping{})
	if !perr.IsCode(err, perr.ErrorCodeInternal) {
		t.Fatalf("want internal, got %v", err)
	}
}

func TestCancellationReachesEvaluatorAndHandler(t *testing.T) {
	reg := NewRegistry()
	var h counter
	Handle(reg, h.lockerHandler())
	Authorize(reg, func(updateLocker) []authz.Requirement {
		return []authz.Requirement{slowCheck{N: 1}, slowCheck{N: 2}}
	})

	ctx, cancel := context.WithCancel(adminCtx())
	evals := 0
	Evaluate(reg, func(ctx context.Context, q slowCheck) (authz.Result, error) {
		evals++
		cancel()
		if err := ctx.Err(); err != nil {
			return authz.Result{}, perr.Wrap(err, perr.ErrorCodeUnavailable, "cancelled")
		}
		return authz.Allow(), nil
	})

	_, err := Send[lockerView](ctx, New(reg), updateLocker{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled, got %v", err)
	}
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("code = %v", perr.CodeOf(err))
	}
	if evals != 1 || h.n != 0 {
		t.Fatalf("evals=%d handler=%d after cancel", evals, h.n)
	}
}

func TestCancelledBeforeDispatch(t *testing.T) {
	reg := NewRegistry()
	var h counter
	Handle(reg, h.lockerHandler())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Send[lockerView](ctx, New(reg), updateLocker{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want canceled, got %v", err)
	}
	if h.n != 0 {
		t.Fatalf("handler ran on cancelled context")
	}
}

func TestDuplicateHandlerPanics(t *testing.T) {
	reg := NewRegistry()
	Handle(reg, func(context.Context, ping) (string, error) { return "", nil })
	kit.MustPanic(t, func() {
		Handle(reg, func(context.Context, ping) (string, error) { return "", nil })
	})
}

type registrarStub struct{ called bool }

func (r *registrarStub) Register(reg *Registry) {
	r.called = true
	Handle(reg, func(context.Context, ping) (string, error) { return "pong", nil })
	Validate(reg, func(getDepartment) []perr.FieldFailure { return nil })
}

func TestInstallAndIntrospection(t *testing.T) {
	stub := &registrarStub{}
	reg := NewRegistry().Install(stub, nil)
	if !stub.called {
		t.Fatalf("registrar not called")
	}
	if got := reg.Requests(); len(got) != 1 || got[0] != "mediator.ping" {
		t.Fatalf("Requests = %v", got)
	}
	if got := reg.Orphans(); len(got) != 1 || got[0] != "mediator.getDepartment" {
		t.Fatalf("Orphans = %v", got)
	}
}
