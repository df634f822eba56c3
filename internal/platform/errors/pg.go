package errors

import (
	"context"
	stderrs "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlStates maps the SQLSTATE codes recordkeeper schemas raise
var sqlStates = map[string]ErrorCode{
	"23505": ErrorCodeDuplicateKey,    // unique_violation
	"23503": ErrorCodeInvalidArgument, // foreign_key_violation: input names a missing row
	"23502": ErrorCodeValidation,      // not_null_violation
	"23514": ErrorCodeConflict,        // check_violation: counters and capacities
	"22001": ErrorCodeInvalidArgument, // string_data_right_truncation
	"22P02": ErrorCodeInvalidArgument, // invalid_text_representation
	"22003": ErrorCodeInvalidArgument, // numeric_value_out_of_range
	"40001": ErrorCodeUnavailable,     // serialization_failure
	"40P01": ErrorCodeUnavailable,     // deadlock_detected
	"55P03": ErrorCodeUnavailable,     // lock_not_available
	"57014": ErrorCodeUnavailable,     // query_canceled (statement_timeout)
	"25006": ErrorCodeUnavailable,     // read_only_sql_transaction
	"57P03": ErrorCodeUnavailable,     // cannot_connect_now
}

// retryStates are worth running the whole transaction again for
var retryStates = map[string]bool{"40001": true, "40P01": true, "55P03": true}

// pgError returns the *pgconn.PgError behind err, if any
func pgError(err error) (*pgconn.PgError, bool) {
	var pg *pgconn.PgError
	if stderrs.As(err, &pg) {
		return pg, true
	}
	return nil, false
}

// FromPostgres wraps err under msg with the code its SQLSTATE maps to
// the offending column, when postgres reports one, becomes the error field
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	pg, ok := pgError(err)
	if !ok {
		return Wrap(err, ErrorCodeDB, msg)
	}
	code, ok := sqlStates[pg.Code]
	if !ok {
		code = ErrorCodeDB
	}
	return &Error{code: code, msg: msg, orig: err, field: strings.TrimSpace(pg.ColumnName)}
}

// Retryable reports whether a failed transaction may succeed when run again
// local cancellation never is; the caller has gone
func Retryable(err error) bool {
	if err == nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return false
	}
	if pg, ok := pgError(err); ok {
		return retryStates[pg.Code]
	}
	return strings.Contains(strings.ToLower(Root(err).Error()), "commit unexpectedly resulted in rollback")
}
