package pools

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

const poolColumns = `id, client_id, volume, pool_type, coating, depth, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPool(s scanner) (*models.Pool, error) {
	p := &models.Pool{}
	if err := s.Scan(&p.ID, &p.ClientID, &p.Volume, &p.PoolType, &p.Coating, &p.Depth, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Pool) (*models.Pool, error) {
	query :=
		`INSERT INTO pools (client_id, volume, pool_type, coating, depth)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.ClientID, p.Volume, p.PoolType, p.Coating, p.Depth).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Pool, error) {
	p, err := scanPool(r.db.QueryRowContext(ctx, `SELECT `+poolColumns+` FROM pools WHERE id = $1`, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByClient(ctx context.Context, clientID int64, page models.Page) ([]*models.Pool, error) {
	query := `SELECT ` + poolColumns + ` FROM pools WHERE client_id = $1 ORDER BY id OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, clientID, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Pool, 0)
	for rows.Next() {
		p, err := scanPool(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Pool) (*models.Pool, error) {
	query :=
		`UPDATE pools SET volume = $1, pool_type = $2, coating = $3, depth = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING updated_at
		 `

	if err := r.db.QueryRowContext(ctx, query, p.Volume, p.PoolType, p.Coating, p.Depth, p.ID).Scan(&p.UpdatedAt); err != nil {
		return nil, dbx.MapError(err)
	}

	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.ExecOne(ctx, r.db, `DELETE FROM pools WHERE id = $1`, id)
}

func (r *PostgresRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	query :=
		`SELECT c.owner_id FROM pools p
		 JOIN clients c ON c.id = p.client_id
		 WHERE p.id = $1
		 `

	var owner int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		return 0, dbx.MapError(err)
	}
	return owner, nil
}
