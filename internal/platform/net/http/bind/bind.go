// Package bind decodes JSON request bodies into request types
// field rules are not checked here; the request pipeline validates once
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	perr "recordkeeper/internal/platform/errors"
)

// MaxBody caps how much of a body is read
const MaxBody = 1 << 20

// ParseJSON decodes exactly one JSON object into T
// unknown fields, trailing data and empty bodies are JSON errors
func ParseJSON[T any](r *http.Request) (T, error) {
	var dst T
	if r.Body == nil {
		return dst, perr.JSONErrf("empty body")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&dst); err != nil {
		if errors.Is(err, io.EOF) {
			return dst, perr.JSONErrf("empty body")
		}
		return dst, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return dst, perr.JSONErrf("unexpected trailing data")
	}
	return dst, nil
}
