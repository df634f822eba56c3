package http

import (
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	perr "recordkeeper/internal/platform/errors"
	pnet "recordkeeper/internal/platform/net"
)

func serve(t *testing.T, h Handler, body string) (*httptest.ResponseRecorder, Envelope) {
	t.Helper()
	req := httptest.NewRequest(stdhttp.MethodPost, "/x", strings.NewReader(body))
	req = req.WithContext(pnet.WithRequest(req.Context(), "req-7", ""))
	rec := httptest.NewRecorder()
	h(rec, req)
	var env Envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode %q: %v", rec.Body.String(), err)
		}
	}
	return rec, env
}

func TestHandleSuccess(t *testing.T) {
	rec, env := serve(t, Handle(func(*stdhttp.Request) Response { return Created(map[string]int{"n": 1}) }), "")
	if rec.Code != stdhttp.StatusCreated || env.StatusCode != 201 || env.Status != "Created" || env.RequestID != "req-7" {
		t.Fatalf("%d %+v", rec.Code, env)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("content type %q", ct)
	}

	rec, _ = serve(t, Handle(func(*stdhttp.Request) Response { return NoContent() }), "")
	if rec.Code != stdhttp.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("no content: %d %q", rec.Code, rec.Body.String())
	}

	rec, _ = serve(t, Handle(func(*stdhttp.Request) Response { return Response{Body: "x"} }), "")
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("zero status = %d", rec.Code)
	}
}

func TestHandleErrors(t *testing.T) {
	cases := []struct {
		err    error
		status int
		msg    string
	}{
		{perr.Forbidden("role employee may not perform room:create"), 403, "role employee may not perform room:create"},
		{perr.Conflictf("room is not empty"), 409, "room is not empty"},
		{perr.Internalf("no evaluator registered"), 500, "internal error"},
		{errors.New("driver: bad conn"), 500, "internal error"},
	}
	for _, c := range cases {
		rec, env := serve(t, Handle(func(*stdhttp.Request) Response { return Error(c.err) }), "")
		if rec.Code != c.status || env.Error != c.msg || env.RequestID != "req-7" || env.Data != nil {
			t.Fatalf("%v: %d %+v", c.err, rec.Code, env)
		}
	}

	_, env := serve(t, Handle(func(*stdhttp.Request) Response {
		return Error(perr.Validation([]perr.FieldFailure{{Field: "name", Message: "Name is required"}}))
	}), "")
	if env.Code != perr.ErrorCodeValidation || len(env.Fields) != 1 || env.Fields[0].Field != "name" {
		t.Fatalf("validation envelope %+v", env)
	}
}

func TestJSONHandler(t *testing.T) {
	type in struct {
		Name string `json:"name"`
	}
	h := JSONHandler(func(_ *stdhttp.Request, v in) (any, error) {
		if v.Name == "dup" {
			return nil, perr.New(perr.ErrorCodeDuplicateKey, "name taken")
		}
		return Created(v), nil
	})

	rec, env := serve(t, h, `{"name":"Finance"}`)
	if rec.Code != stdhttp.StatusCreated || env.Data.(map[string]any)["name"] != "Finance" {
		t.Fatalf("%d %+v", rec.Code, env)
	}
	rec, env = serve(t, h, `{"name":"dup"}`)
	if rec.Code != stdhttp.StatusConflict || env.Code != perr.ErrorCodeDuplicateKey {
		t.Fatalf("%d %+v", rec.Code, env)
	}
	rec, env = serve(t, h, `{"nome":"x"}`)
	if rec.Code != stdhttp.StatusBadRequest || env.Code != perr.ErrorCodeJSON {
		t.Fatalf("%d %+v", rec.Code, env)
	}

	rec, env = serve(t, NoBody(func(*stdhttp.Request) (any, error) { return []int{1, 2}, nil }), "")
	if rec.Code != stdhttp.StatusOK || len(env.Data.([]any)) != 2 {
		t.Fatalf("%d %+v", rec.Code, env)
	}
}
