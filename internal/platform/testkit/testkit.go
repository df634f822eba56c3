// Package testkit holds helpers shared by package tests
package testkit

import (
	"fmt"
	"sync"
	"testing"
)

// MustPanic fails t unless fn panics, and returns the panic value as text
func MustPanic(t *testing.T, fn func()) (msg string) {
	t.Helper()
	defer func() {
		v := recover()
		if v == nil {
			t.Fatal("expected a panic")
		}
		msg = fmt.Sprint(v)
	}()
	fn()
	return ""
}

// Swap sets *target to v until the test ends
func Swap[T any](t *testing.T, target *T, v T) {
	t.Helper()
	orig := *target
	*target = v
	t.Cleanup(func() { *target = orig })
}

var serial sync.Mutex

// Serial holds a process wide lock until the test ends
// tests that Swap package seams take it so parallel tests never see the swap
func Serial(t *testing.T) {
	t.Helper()
	serial.Lock()
	t.Cleanup(serial.Unlock)
}
