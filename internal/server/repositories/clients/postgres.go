package clients

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

const clientColumns = `id, owner_id, name, phone, email, address, cpf_cnpj, is_active, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(s scanner) (*models.Client, error) {
	c := &models.Client{}
	err := s.Scan(&c.ID, &c.OwnerID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CPFCNPJ,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *PostgresRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	query :=
		`INSERT INTO clients (owner_id, name, phone, email, address, cpf_cnpj, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		c.OwnerID, c.Name, c.Phone, c.Email, c.Address, c.CPFCNPJ, c.IsActive).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Client, error) {
	c, err := scanClient(r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return c, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE owner_id = $1 ORDER BY id OFFSET $2 LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, ownerID, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Client, 0)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, c *models.Client) (*models.Client, error) {
	query :=
		`UPDATE clients SET name = $1, phone = $2, email = $3, address = $4, cpf_cnpj = $5, is_active = $6,
		        updated_at = now()
		 WHERE id = $7
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		c.Name, c.Phone, c.Email, c.Address, c.CPFCNPJ, c.IsActive, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return c, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.ExecOne(ctx, r.db, `DELETE FROM clients WHERE id = $1`, id)
}

func (r *PostgresRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var owner int64
	if err := r.db.QueryRowContext(ctx, `SELECT owner_id FROM clients WHERE id = $1`, id).Scan(&owner); err != nil {
		return 0, dbx.MapError(err)
	}
	return owner, nil
}
