package store

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorClass tells a retrying caller what to do with a store error
type ErrorClass string

const (
	// ErrorClassDuplicate is a unique violation; the row already exists
	ErrorClassDuplicate ErrorClass = "duplicate"
	// ErrorClassTransient covers unavailability and rate limiting; retry
	ErrorClassTransient ErrorClass = "transient"
	// ErrorClassPermanent will not succeed on retry
	ErrorClassPermanent ErrorClass = "permanent"
)

// SQLSTATE codes and classes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	sqlStateUniqueViolation      = "23505"
	sqlStateSerializationFailure = "40001"
	sqlStateDeadlockDetected     = "40P01"
	sqlStateClassConnection      = "08"
	sqlStateClassResources       = "53"
	sqlStateClassOperator        = "57P"
)

// ClassifyError maps a store error to a retry decision.
// Unique violations are duplicates only when they hit uniqueIndex, or any unique index when uniqueIndex is empty.
// Unrecognized errors are transient so the caller retries and replays rather than drops.
func ClassifyError(err error, uniqueIndex string) ErrorClass {
	if err == nil {
		return ErrorClassTransient
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == sqlStateUniqueViolation:
			if uniqueIndex == "" || pgErr.ConstraintName == uniqueIndex {
				return ErrorClassDuplicate
			}
			return ErrorClassPermanent
		case pgErr.Code == sqlStateSerializationFailure,
			pgErr.Code == sqlStateDeadlockDetected,
			strings.HasPrefix(pgErr.Code, sqlStateClassConnection),
			strings.HasPrefix(pgErr.Code, sqlStateClassResources),
			strings.HasPrefix(pgErr.Code, sqlStateClassOperator):
			return ErrorClassTransient
		default:
			return ErrorClassPermanent
		}
	}

	return ErrorClassTransient
}

// IsUniqueViolation reports whether err is a unique violation on the named index.
// An empty name matches any unique index.
func IsUniqueViolation(err error, index string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != sqlStateUniqueViolation {
		return false
	}
	return index == "" || pgErr.ConstraintName == index
}
