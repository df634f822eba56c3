package net_test

import (
	"context"
	"testing"

	pnet "recordkeeper/internal/platform/net"
)

func TestRequestScope(t *testing.T) {
	cases := []struct {
		name, req, user string
	}{
		{"both", "req-1", "9b2f"},
		{"request only", "req-2", ""},
		{"user only", "", "9b2f"},
		{"neither", "", ""},
	}
	for _, c := range cases {
		ctx := pnet.WithRequest(context.Background(), c.req, c.user)
		if got := pnet.RequestID(ctx); got != c.req {
			t.Fatalf("%s: request id = %q", c.name, got)
		}
		if got := pnet.UserID(ctx); got != c.user {
			t.Fatalf("%s: user id = %q", c.name, got)
		}
	}
}

func TestWithUserKeepsRequestID(t *testing.T) {
	ctx := pnet.WithRequest(context.Background(), "req-3", "")
	ctx = pnet.WithUser(ctx, "u1")
	if pnet.RequestID(ctx) != "req-3" || pnet.UserID(ctx) != "u1" {
		t.Fatal("scope lost")
	}
}
