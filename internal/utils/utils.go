package utils

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsPGForeignKeyViolation reports whether error is PostgreSQL foreign key violation (code 23503).
// Inserting a note for a task deleted by a concurrent request surfaces this way.
func IsPGForeignKeyViolation(err error) bool {
	var pge *pgconn.PgError
	if errors.As(err, &pge) {
		return pge.Code == "23503"
	}
	return false
}
