package validation

import (
	"errors"
	"strings"
	"sync"
	"testing"

	perr "recordkeeper/internal/platform/errors"
)

func TestTagNameFunc_JsonTagNameUsed(t *testing.T) {
	type s struct {
		Val int `json:"foo,omitempty" validate:"min=1"`
	}
	fs, err := Struct(s{Val: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs) != 1 || fs[0].Field != "foo" {
		t.Fatalf("expected field=foo, got %+v", fs)
	}
	if !strings.Contains(fs[0].Message, "at least") {
		t.Fatalf("unexpected message: %q", fs[0].Message)
	}
}

func TestTagNameFunc_DashAndNoTagUseFieldName(t *testing.T) {
	type s struct {
		Secret int `json:"-" validate:"min=1"`
		Plain  int `validate:"min=1"`
	}
	fs, _ := Struct(s{})
	if len(fs) != 2 || fs[0].Field != "Secret" || fs[1].Field != "Plain" {
		t.Fatalf("unexpected failures: %+v", fs)
	}
}

func TestStruct_CollectsAllFailuresInOrder(t *testing.T) {
	type room struct {
		Name     string `json:"name" validate:"notblank,max=8"`
		Capacity int    `json:"capacity" validate:"gte=1"`
	}
	fs, err := Struct(room{Name: "   ", Capacity: 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fs) != 2 {
		t.Fatalf("want 2 failures, got %+v", fs)
	}
	if fs[0].Message != "name must not be blank" {
		t.Fatalf("notblank message: %q", fs[0].Message)
	}
	if fs[1].Message != "capacity must be at least 1" {
		t.Fatalf("gte message: %q", fs[1].Message)
	}
}

func TestStruct_Valid(t *testing.T) {
	type s struct {
		Name string `json:"name" validate:"required,max=5"`
	}
	fs, err := Struct(s{Name: "ok"})
	if err != nil || fs != nil {
		t.Fatalf("expected pass, got %+v %v", fs, err)
	}
}

func TestStruct_NonStructIsInternal(t *testing.T) {
	_, err := Struct(5)
	if !perr.IsCode(err, perr.ErrorCodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
}

func TestFailures_Foreign(t *testing.T) {
	fs := Failures(errors.New("boom"))
	if len(fs) != 1 || fs[0].Field != "" || fs[0].Message != "boom" {
		t.Fatalf("unexpected: %+v", fs)
	}
	if Failures(nil) != nil {
		t.Fatalf("nil error should have no failures")
	}
}

func TestGetConcurrentFirstUse(t *testing.T) {
	const n = 16
	got := make([]*Svc, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Get()
		}()
	}
	wg.Wait()
	for i, s := range got {
		if s == nil || s != got[0] {
			t.Fatalf("goroutine %d saw %p, want %p", i, s, got[0])
		}
	}
}
