package projects

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

const projectColumns = `id, owner_id, name, description, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProject(s scanner) (*models.Project, error) {
	p := &models.Project{}
	if err := s.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Project) (*models.Project, error) {
	query :=
		`INSERT INTO projects (owner_id, name, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query, p.OwnerID, p.Name, p.Description).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE owner_id = $1 ORDER BY id OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, ownerID, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
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

func (r *PostgresRepository) Update(ctx context.Context, p *models.Project) (*models.Project, error) {
	query :=
		`UPDATE projects SET name = $1, description = $2, updated_at = now()
		 WHERE id = $3
		 RETURNING updated_at
		 `

	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.ID).Scan(&p.UpdatedAt); err != nil {
		return nil, dbx.MapError(err)
	}

	return p, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.ExecOne(ctx, r.db, `DELETE FROM projects WHERE id = $1`, id)
}

func (r *PostgresRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	if err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM projects WHERE id = $1`, id).Scan(&owner); err != nil {
		return 0, dbx.MapError(err)
	}
	return owner, nil
}
