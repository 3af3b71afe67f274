package projects

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "owner_id", "name", "description", "created_at", "updated_at"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+projects\s*\(owner_id,\s*name,\s*description\)\s+VALUES\s*\(\$1,\s*\$2,\s*\$3\)\s+RETURNING\s+id,\s*created_at,\s*updated_at\s*$`).
		WithArgs(int64(1), "Renovation", "tiles").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(2), now, now))

	p, err := repo.Create(context.Background(), &models.Project{OwnerID: 1, Name: "Renovation", Description: "tiles"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`^SELECT\s+id,\s*owner_id,.*FROM\s+projects\s+WHERE\s+id\s*=\s*\$1$`).WithArgs(int64(9)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), 9)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListByOwner(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	q := `^SELECT\s+.+FROM\s+projects\s+WHERE\s+owner_id\s*=\s*\$1\s+ORDER\s+BY\s+id\s+OFFSET\s+\$2\s+LIMIT\s+\$3$`
	mock.ExpectQuery(q).WithArgs(int64(1), 0, 2).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(1), int64(1), "a", "", now, now).
			AddRow(int64(2), int64(1), "b", "", now, now))
	mock.ExpectQuery(q).WithArgs(int64(1), 0, 2).WillReturnError(errors.New("db down"))

	list, err := repo.ListByOwner(context.Background(), 1, models.Page{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = repo.ListByOwner(context.Background(), 1, models.Page{Limit: 2})
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestUpdateDeleteOwnerOf(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`(?s)^UPDATE\s+projects\s+SET\s+name\s*=\s*\$1,\s*description\s*=\s*\$2,\s*updated_at\s*=\s*now\(\)\s+WHERE\s+id\s*=\s*\$3`).
		WithArgs("n", "d", int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(now))
	mock.ExpectExec(`^DELETE\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1$`).WithArgs(int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`^SELECT\s+owner_id\s+FROM\s+projects\s+WHERE\s+id\s*=\s*\$1$`).WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"owner_id"}).AddRow(int64(1)))

	p, err := repo.Update(context.Background(), &models.Project{ID: 2, Name: "n", Description: "d"})
	require.NoError(t, err)
	assert.Equal(t, now, p.UpdatedAt)

	require.NoError(t, repo.Delete(context.Background(), 2))

	owner, err := repo.OwnerOf(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), owner)
	require.NoError(t, mock.ExpectationsWereMet())
}
