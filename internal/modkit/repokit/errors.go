package repokit

import (
	"context"
	"errors"

	perr "recordkeeper/internal/platform/errors"
)

// Err classifies a driver error for the service layer
// already classified errors pass through, cancellation maps to Unavailable
// and everything else is mapped from its SQLSTATE with msg
func Err(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := perr.As(err); ok {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "request cancelled")
	}
	return perr.FromPostgres(err, msg)
}

// NotFound rewrites a NotFound err into a message naming the missing entity
// other errors are returned unchanged
func NotFound(err error, kind string, id any) error {
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return perr.NotFoundf("%s %v not found", kind, id)
	}
	return err
}

// Duplicate rewrites a unique violation with a caller facing message
func Duplicate(err error, format string, a ...any) error {
	if perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		return perr.Wrapf(err, perr.ErrorCodeDuplicateKey, format, a...)
	}
	return err
}
