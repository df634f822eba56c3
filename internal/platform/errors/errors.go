// Package errors provides the structured error type shared by every layer of recordkeeper
package errors

// Import as perr

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the closed set of error kinds a caller can branch on
// Values are stable for wire compatibility; append only
type ErrorCode uint16

const (
	// ErrorCodeUnknown is unclassified and rendered as internal
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic

	// retryable
	ErrorCodeUnavailable
	ErrorCodeTooManyRequests

	ErrorCodeConflict // state conflict, e.g. a full room or a non empty box
	ErrorCodeUnauthorized
	ErrorCodeForbidden       // unmet requirement; message is the denial reason
	ErrorCodeInvalidArgument // bad parameters outside a rule set
	ErrorCodeValidation      // rule failures, see Failures
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB

	// ErrorCodeInternal marks misconfiguration or a broken pipeline invariant
	// such as a missing evaluator or a malformed actor
	ErrorCodeInternal
)

// codeInfo is the log name and HTTP status of each code
var codeInfo = map[ErrorCode]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:         {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:           {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:     {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests: {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeConflict:        {"conflict", http.StatusConflict},
	ErrorCodeUnauthorized:    {"unauthorized", http.StatusUnauthorized},
	ErrorCodeForbidden:       {"forbidden", http.StatusForbidden},
	ErrorCodeInvalidArgument: {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:      {"validation", http.StatusBadRequest},
	ErrorCodeJSON:            {"json", http.StatusBadRequest},
	ErrorCodeNotFound:        {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:    {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:              {"db", http.StatusInternalServerError},
	ErrorCodeInternal:        {"internal", http.StatusInternalServerError},
}

// String returns a short stable name for logs
func (c ErrorCode) String() string {
	if i, ok := codeInfo[c]; ok {
		return i.name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// Status is the HTTP status for c; unmapped codes are 500
func (c ErrorCode) Status() int {
	if i, ok := codeInfo[c]; ok {
		return i.status
	}
	return http.StatusInternalServerError
}

// IsInternal reports whether a code must be hidden from callers
func IsInternal(c ErrorCode) bool { return c.Status() >= http.StatusInternalServerError }

// ErrNotFound is a sentinel not found error for convenience
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// internalMessage replaces the message of 5xx errors on the wire
const internalMessage = "internal error"

// FieldFailure is one failed rule on one request field
type FieldFailure struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the structured error type with wrapping and metadata
// failures is set for validation errors, op names the pipeline stage that failed
type Error struct {
	orig     error
	msg      string
	code     ErrorCode
	field    string
	op       string
	failures []FieldFailure
}

// Wire is the JSON-serializable form returned by the API
type Wire struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Field   string         `json:"field,omitempty"`
	Fields  []FieldFailure `json:"fields,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Message returns the message without the wrapped cause
func (e *Error) Message() string { return e.msg }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// Failures returns a copy of the field failures carried by a validation error
func (e *Error) Failures() []FieldFailure {
	if len(e.failures) == 0 {
		return nil
	}
	out := make([]FieldFailure, len(e.failures))
	copy(out, e.failures)
	return out
}

// ToWire converts an *Error to a Wire payload
// Internal codes never expose their message
func (e *Error) ToWire() Wire {
	if IsInternal(e.code) {
		return Wire{Code: e.code, Message: internalMessage}
	}
	return Wire{Code: e.code, Message: e.msg, Field: e.field, Fields: e.Failures()}
}

// WireFrom converts any error into a Wire payload with best-effort mapping
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: internalMessage}
}

// Root follows Unwrap to the innermost cause
func Root(err error) error {
	for {
		next := stderrs.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// FailuresOf returns the field failures of a validation error, or nil
func FailuresOf(err error) []FieldFailure {
	if e, ok := As(err); ok {
		return e.Failures()
	}
	return nil
}

// MessageOf returns the caller-facing message of err
func MessageOf(err error) string {
	if e, ok := As(err); ok {
		return e.msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WithOp returns a copy of err labelled with the pipeline stage op
// errors from outside this package pass through untouched
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// New returns an *Error with code and msg
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format string
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap keeps orig as the cause of a new *Error
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{orig: orig, code: code, msg: msg}
}

// Wrapf is Wrap with a format string
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

// Validation builds a validation error carrying every failure in order
// The first failure's field is mirrored into Field for single-field clients
func Validation(failures []FieldFailure) error {
	e := &Error{code: ErrorCodeValidation, msg: "validation failed"}
	if len(failures) > 0 {
		e.failures = make([]FieldFailure, len(failures))
		copy(e.failures, failures)
		e.field = failures[0].Field
	}
	return e
}

// shorthands for the codes raised outside the pipeline

func NotFoundf(format string, a ...any) error { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }

// Forbidden returns a forbidden error with a verbatim denial reason
func Forbidden(reason string) error { return New(ErrorCodeForbidden, reason) }

func Conflictf(format string, a ...any) error { return Newf(ErrorCodeConflict, format, a...) }
func Internalf(format string, a ...any) error { return Newf(ErrorCodeInternal, format, a...) }
