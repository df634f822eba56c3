// Package http is the transport layer: chi routing, the JSON envelope and the server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "recordkeeper/internal/platform/errors"
	"recordkeeper/internal/platform/logger"
	pnet "recordkeeper/internal/platform/net"
)

// Envelope is the body of every JSON response
type Envelope struct {
	StatusCode int                 `json:"status_code"`
	Status     string              `json:"status"`
	Code       perr.ErrorCode      `json:"code,omitempty"`
	Error      string              `json:"error,omitempty"`
	Fields     []perr.FieldFailure `json:"fields,omitempty"`
	RequestID  string              `json:"request_id,omitempty"`
	Data       any                 `json:"data,omitempty"`
}

// JSON writes v with status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Debug().Err(err).Msg("response encode failed")
	}
}

// WriteData writes data inside a success envelope
func WriteData(w stdhttp.ResponseWriter, r *stdhttp.Request, status int, data any) {
	if status == stdhttp.StatusNoContent {
		w.WriteHeader(status)
		return
	}
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		RequestID:  pnet.RequestID(r.Context()),
		Data:       data,
	})
}

// WriteError writes err as an error envelope; 5xx errors are logged with their cause
func WriteError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	status := perr.HTTPStatus(err)
	reqID := pnet.RequestID(r.Context())
	if status >= stdhttp.StatusInternalServerError {
		logger.C(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	}
	wire := perr.WireFrom(err)
	JSON(w, status, Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Fields:     wire.Fields,
		RequestID:  reqID,
	})
}

// Response is what return-style handlers produce
// a Body holding an error renders as an error envelope
type Response struct {
	Status int
	Body   any
}

// Handle adapts a return-style handler
func Handle(h func(*stdhttp.Request) Response) Handler {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		if err, ok := resp.Body.(error); ok && err != nil {
			WriteError(w, r, err)
			return
		}
		status := resp.Status
		if status == 0 {
			status = stdhttp.StatusOK
		}
		WriteData(w, r, status, resp.Body)
	}
}

// OK is a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Created is a 201 response
func Created(data any) Response { return Response{Status: stdhttp.StatusCreated, Body: data} }

// NoContent is a 204 response
func NoContent() Response { return Response{Status: stdhttp.StatusNoContent} }

// Error is a response rendering err
func Error(err error) Response { return Response{Body: err} }
