package httpkit

import (
	"net/http"
	"strings"

	perr "recordkeeper/internal/platform/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// PathUUID parses the chi route param name as a uuid
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, badParam(name, "must be a valid uuid")
	}
	return id, nil
}

// QueryUUID parses an optional query param as a uuid; absent yields nil
func QueryUUID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, badParam(name, "must be a valid uuid")
	}
	return &id, nil
}

// QueryString returns an optional trimmed query param; absent yields nil
func QueryString(r *http.Request, name string) *string {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil
	}
	return &raw
}

func badParam(name, msg string) error {
	return perr.Validation([]perr.FieldFailure{{Field: name, Message: name + " " + msg}})
}
