package config

import (
	"testing"
	"time"

	kit "recordkeeper/internal/platform/testkit"
)

func TestPrefixAndStrings(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", " postgres://localhost/records ")
	pg := New().Prefix("SERVICE_").Prefix("PGSQL_")

	if got := pg.MustString("DBURL"); got != "postgres://localhost/records" {
		t.Fatalf("DBURL = %q", got)
	}
	if got := pg.MayString("APP", "recordkeeper"); got != "recordkeeper" {
		t.Fatalf("default = %q", got)
	}
	kit.MustPanic(t, func() { pg.MustString("MISSING") })
}

func TestTypedValues(t *testing.T) {
	t.Setenv("RK_MAX_CONNS", "8")
	t.Setenv("RK_LOG_SQL", "false")
	t.Setenv("RK_TIMEOUT", "250ms")
	t.Setenv("RK_BAD_INT", "eight")
	t.Setenv("RK_BAD_BOOL", "maybe")
	t.Setenv("RK_BAD_DUR", "soon")
	c := New().Prefix("RK_")

	if c.MayInt("MAX_CONNS", 4) != 8 || c.MayInt("BAD_INT", 4) != 4 || c.MayInt("NONE", 4) != 4 {
		t.Fatal("MayInt")
	}
	if c.MayBool("LOG_SQL", true) || !c.MayBool("BAD_BOOL", true) || !c.MayBool("NONE", true) {
		t.Fatal("MayBool")
	}
	if c.MayDuration("TIMEOUT", time.Second) != 250*time.Millisecond || c.MayDuration("BAD_DUR", time.Second) != time.Second {
		t.Fatal("MayDuration")
	}
}

func TestMayCSV(t *testing.T) {
	t.Setenv("RK_ORIGINS", " https://a.example , ,https://b.example,")
	t.Setenv("RK_BLANKS", " , ,")
	c := New().Prefix("RK_")

	got := c.MayCSV("ORIGINS", nil)
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("ORIGINS = %q", got)
	}
	if got := c.MayCSV("BLANKS", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("BLANKS = %q", got)
	}
	if c.MayCSV("NONE", nil) != nil {
		t.Fatal("missing must be def")
	}
}
