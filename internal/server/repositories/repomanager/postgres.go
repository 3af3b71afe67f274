package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/migrations"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/budgets"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/clients"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/pools"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/projects"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/servicerecords"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/settings"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager binds PostgreSQL repositories to a *sql.DB or to
// a transaction opened on it.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// NewPostgresRepositoryManager wraps an open connection pool.
func NewPostgresRepositoryManager(db *sql.DB) *PostgresRepositoryManager {
	return &PostgresRepositoryManager{db: db}
}

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// OpenPostgres opens and pings a pgx-backed pool.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {
	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewPostgresRepositoryManager(db), nil
}

func bind(db dbx.DBTX) Repositories {
	return Repositories{
		Users:    users.NewPostgresRepository(db),
		Clients:  clients.NewPostgresRepository(db),
		Pools:    pools.NewPostgresRepository(db),
		Services: servicerecords.NewPostgresRepository(db),
		Budgets:  budgets.NewPostgresRepository(db),
		Projects: projects.NewPostgresRepository(db),
		Settings: settings.NewPostgresRepository(db),
	}
}

func (m *PostgresRepositoryManager) Repos() Repositories {
	return bind(m.db)
}

func (m *PostgresRepositoryManager) WithinTx(ctx context.Context, fn func(ctx context.Context, r Repositories) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, bind(tx))
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}
