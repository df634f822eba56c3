package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeStatusAndName(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		status int
		name   string
	}{
		{ErrorCodeValidation, http.StatusBadRequest, "validation"},
		{ErrorCodeForbidden, http.StatusForbidden, "forbidden"},
		{ErrorCodeNotFound, http.StatusNotFound, "not_found"},
		{ErrorCodeConflict, http.StatusConflict, "conflict"},
		{ErrorCodeDuplicateKey, http.StatusConflict, "duplicate_key"},
		{ErrorCodeUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity, "invalid_argument"},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable, "unavailable"},
		{ErrorCodeInternal, http.StatusInternalServerError, "internal"},
		{ErrorCode(999), http.StatusInternalServerError, "code(999)"},
	}
	for _, c := range cases {
		if got := c.code.Status(); got != c.status {
			t.Fatalf("%v.Status() = %d, want %d", c.code, got, c.status)
		}
		if got := c.code.String(); got != c.name {
			t.Fatalf("String() = %q, want %q", got, c.name)
		}
	}
	if !IsInternal(ErrorCodeDB) || IsInternal(ErrorCodeForbidden) {
		t.Fatal("IsInternal misclassifies")
	}
}

func TestWrapKeepsCauseAndCode(t *testing.T) {
	root := stderrs.New("conn reset")
	err := fmt.Errorf("repo: %w", Wrapf(root, ErrorCodeUnavailable, "load room %d", 7))

	if !IsCode(err, ErrorCodeUnavailable) {
		t.Fatalf("code = %v", CodeOf(err))
	}
	if !stderrs.Is(err, root) || Root(err) != root {
		t.Fatal("cause lost")
	}
	if MessageOf(err) != "load room 7" {
		t.Fatalf("message = %q", MessageOf(err))
	}
	if HTTPStatus(err) != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", HTTPStatus(err))
	}
	if CodeOf(root) != ErrorCodeUnknown || MessageOf(root) != "conn reset" || MessageOf(nil) != "" {
		t.Fatal("foreign errors")
	}
}

func TestValidationCarriesFailures(t *testing.T) {
	in := []FieldFailure{
		{Field: "capacity", Message: "Capacity must be non-negative"},
		{Field: "name", Message: "Name is required"},
	}
	err := Validation(in)
	in[0].Message = "mutated"

	got := FailuresOf(err)
	if len(got) != 2 || got[0].Message != "Capacity must be non-negative" {
		t.Fatalf("failures = %+v", got)
	}
	w := WireFrom(err)
	if w.Code != ErrorCodeValidation || w.Field != "capacity" || len(w.Fields) != 2 {
		t.Fatalf("wire = %+v", w)
	}
	if FailuresOf(stderrs.New("x")) != nil {
		t.Fatal("foreign error has failures")
	}
}

func TestWireHidesInternals(t *testing.T) {
	w := WireFrom(Internalf("no evaluator for %s", "authz.RoomOwnership"))
	if w.Code != ErrorCodeInternal || w.Message != "internal error" {
		t.Fatalf("internal leaked: %+v", w)
	}
	w = WireFrom(stderrs.New("pq: secret detail"))
	if w.Code != ErrorCodeUnknown || w.Message != "internal error" {
		t.Fatalf("foreign leaked: %+v", w)
	}
	w = WireFrom(Forbidden("role employee may not perform locker:create"))
	if w.Message != "role employee may not perform locker:create" {
		t.Fatalf("denial reason must be verbatim: %+v", w)
	}
	if w := WireFrom(nil); w.Code != ErrorCodeUnknown || w.Message != "" || w.Fields != nil {
		t.Fatal("nil error must give zero wire")
	}
}

func TestWithOpCopies(t *testing.T) {
	base := Forbidden("nope")
	tagged := WithOp(base, "authz.RoomOwnership")
	e, _ := As(tagged)
	b, _ := As(base)
	if e.Op() != "authz.RoomOwnership" || b.Op() != "" {
		t.Fatalf("op = %q base op = %q", e.Op(), b.Op())
	}
	plain := stderrs.New("x")
	if WithOp(plain, "op") != plain {
		t.Fatal("foreign error must pass through")
	}
}

func TestNilErrorRenders(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("got %q", e.Error())
	}
	if !IsCode(ErrNotFound, ErrorCodeNotFound) {
		t.Fatal("ErrNotFound code")
	}
}
