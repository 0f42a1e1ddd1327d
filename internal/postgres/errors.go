package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

// Postgres error code for unique constraint violations.
const codeUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique constraint violation,
// which repositories translate into an already-exists error.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == codeUniqueViolation
	}
	return false
}

// IsNoRows reports whether err is the sql no-rows sentinel.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
