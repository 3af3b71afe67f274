package dbx

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	require.NoError(t, MapError(nil))
	assert.ErrorIs(t, MapError(sql.ErrNoRows), common.ErrorNotFound)

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	err := MapError(dup)
	assert.ErrorIs(t, err, common.ErrorConflict)
	assert.Contains(t, err.Error(), "users_email_key")
	assert.True(t, IsUniqueViolation(dup))

	other := errors.New("db down")
	err = MapError(other)
	assert.ErrorIs(t, err, other)
	assert.EqualError(t, err, "db error: db down")
	assert.False(t, IsUniqueViolation(other))
}
