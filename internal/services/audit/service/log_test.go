package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"recordkeeper/internal/core/authz"

	"github.com/rs/zerolog"
)

func TestLog_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf).Level(zerolog.InfoLevel)
	a := Log(&l)

	a.Record(context.Background(), authz.Decision{Request: "domain.AddRoom", Kind: "permission", Authorized: true})
	if buf.Len() != 0 {
		t.Fatalf("grant logged at info: %s", buf.String())
	}

	a.Record(context.Background(), authz.Decision{Request: "domain.AddRoom", Kind: "permission", Reason: "role employee may not perform room:create"})
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if line["level"] != "info" || line["reason"] != "role employee may not perform room:create" || line["authorized"] != false {
		t.Fatalf("line = %v", line)
	}
}

func TestTee(t *testing.T) {
	var n int
	count := authz.AuditorFunc(func(context.Context, authz.Decision) { n++ })
	Tee(count, authz.Discard, count).Record(context.Background(), authz.Decision{})
	if n != 2 {
		t.Fatalf("n = %d", n)
	}
}
