package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestRepos_AllBound(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var m RepositoryManager = NewPostgresRepositoryManager(db)
	r := m.Repos()

	assert.NotNil(t, r.Users)
	assert.NotNil(t, r.Clients)
	assert.NotNil(t, r.Pools)
	assert.NotNil(t, r.Services)
	assert.NotNil(t, r.Budgets)
	assert.NotNil(t, r.Projects)
	assert.NotNil(t, r.Settings)
}

func TestWithinTx_CommitsOnSuccess(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`^SELECT\s+pg_advisory_xact_lock\(\$1\)$`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`^SELECT\s+COUNT\(\*\)\s+FROM\s+users\s+WHERE\s+is_superuser$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	m := NewPostgresRepositoryManager(db)
	err := m.WithinTx(context.Background(), func(ctx context.Context, r Repositories) error {
		if err := r.Users.LockSuperusers(ctx); err != nil {
			return err
		}
		n, err := r.Users.CountSuperusers(ctx)
		require.Equal(t, 0, n)
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithinTx_RollsBackOnError(t *testing.T) {
	db, mock := newDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("boom")
	m := NewPostgresRepositoryManager(db)
	err := m.WithinTx(context.Background(), func(ctx context.Context, r Repositories) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgres_PingFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	mock.ExpectPing().WillReturnError(errors.New("refused"))
	mock.ExpectClose()

	orig := sqlOpen
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		assert.Equal(t, "pgx", driver)
		assert.Equal(t, "postgres://x", dsn)
		return db, nil
	}
	defer func() { sqlOpen = orig }()

	_, err = OpenPostgres(context.Background(), "postgres://x")
	require.ErrorContains(t, err, "ping database: refused")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMigrations_Success(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if dir != "." {
			return errors.New("unexpected dir")
		}
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		return nil
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(context.Background()); err != nil {
		t.Fatalf("RunMigrations error: %v", err)
	}
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := NewPostgresRepositoryManager(db)
	if err := m.RunMigrations(context.Background()); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}
