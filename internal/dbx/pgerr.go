package dbx

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err carries a PostgreSQL unique
// constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// MapError translates driver errors into the shared sentinels: no rows
// becomes common.ErrorNotFound, a unique violation becomes
// common.ErrorConflict, anything else is wrapped as a db error.
func MapError(err error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return common.ErrorNotFound
	case errors.As(err, &pgErr) && pgErr.Code == uniqueViolation:
		return fmt.Errorf("%w: %s", common.ErrorConflict, pgErr.ConstraintName)
	default:
		return fmt.Errorf("db error: %w", err)
	}
}
