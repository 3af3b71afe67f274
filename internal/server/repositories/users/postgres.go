package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

// superuserLockKey identifies the transaction-scoped advisory lock guarding
// superuser creation, demotion and deletion.
const superuserLockKey int64 = 0x706f6f6c5355

const userColumns = `id, email, username, hashed_password, is_superuser, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*models.User, error) {
	u := &models.User{}
	if err := s.Scan(&u.ID, &u.Email, &u.Username, &u.HashedPassword, &u.IsSuperuser, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, username, hashed_password, is_superuser)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.HashedPassword, user.IsSuperuser).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) getOne(ctx context.Context, where string, arg any) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE ` + where + ` = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, "username", username)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, "email", email)
}

func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id OFFSET $1 LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`UPDATE users SET email = $1, username = $2, hashed_password = $3, is_superuser = $4
		 WHERE id = $5
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.HashedPassword, user.IsSuperuser, user.ID).Scan(&user.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return user, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.ExecOne(ctx, r.db, `DELETE FROM users WHERE id = $1`, id)
}

func (r *PostgresRepository) CountSuperusers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_superuser`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

func (r *PostgresRepository) LockSuperusers(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, superuserLockKey); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
