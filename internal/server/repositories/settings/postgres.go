package settings

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.AppSetting) (*models.AppSetting, error) {
	query := `INSERT INTO app_settings (key, value) VALUES ($1, $2) RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, s.Key, s.Value).Scan(&s.ID); err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) GetByKey(ctx context.Context, key string) (*models.AppSetting, error) {
	s := &models.AppSetting{}
	err := r.db.QueryRowContext(ctx, `SELECT id, key, value FROM app_settings WHERE key = $1`, key).
		Scan(&s.ID, &s.Key, &s.Value)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) List(ctx context.Context, page models.Page) ([]*models.AppSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, key, value FROM app_settings ORDER BY id OFFSET $1 LIMIT $2`, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.AppSetting, 0)
	for rows.Next() {
		s := &models.AppSetting{}
		if err := rows.Scan(&s.ID, &s.Key, &s.Value); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.AppSetting) (*models.AppSetting, error) {
	query := `UPDATE app_settings SET key = $1, value = $2 WHERE id = $3 RETURNING id`

	if err := r.db.QueryRowContext(ctx, query, s.Key, s.Value, s.ID).Scan(&s.ID); err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.ExecOne(ctx, r.db, `DELETE FROM app_settings WHERE id = $1`, id)
}
