package errors

// Postgres-specific helpers for mapping pgx errors to project categories

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE codes we care about
const (
	pgErrUniqueViolation  = "23505"
	pgErrNotNullViolation = "23502"
	pgErrCheckViolation   = "23514"
	pgErrCannotConnectNow = "57P03" // i.e. startup in progress
)

// ExtractPgError returns (*pgconn.PgError, true) if the root cause is a PgError
func ExtractPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsSQLState reports whether the error is a Postgres error with the given SQLSTATE code
func IsSQLState(err error, code string) bool {
	pgErr, ok := ExtractPgError(err)
	return ok && pgErr.Code == code
}

// FromPostgres maps a pg error into the project taxonomy.
// Missing rows become NOT_FOUND; everything else is internal because storage
// faults must never surface as client errors. Known SQLSTATEs sharpen the
// server-side detail string (the wire form stays scrubbed either way).
// Returns nil for nil input
func FromPostgres(err error, details string) error {
	if err == nil {
		return nil
	}
	if stderrs.Is(err, pgx.ErrNoRows) {
		return NotFoundf("%s", details)
	}
	switch {
	case IsSQLState(err, pgErrUniqueViolation):
		details += ": unique violation"
	case IsSQLState(err, pgErrNotNullViolation):
		details += ": not null violation"
	case IsSQLState(err, pgErrCheckViolation):
		details += ": check violation"
	case IsSQLState(err, pgErrCannotConnectNow):
		details += ": database starting up"
	}
	return Wrap(err, CategoryInternal, details)
}
