package budgets

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

const budgetColumns = `b.id, b.client_id, b.date, b.items, b.total, b.status, b.validity, b.created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBudget(s scanner) (*models.Budget, error) {
	b := &models.Budget{}
	var validity sql.NullTime
	if err := s.Scan(&b.ID, &b.ClientID, &b.Date, &b.Items, &b.Total, &b.Status, &validity, &b.CreatedAt); err != nil {
		return nil, err
	}
	if validity.Valid {
		b.Validity = &validity.Time
	}
	return b, nil
}

func nullTime(b *models.Budget) sql.NullTime {
	if b.Validity == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *b.Validity, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	query :=
		`INSERT INTO budgets (client_id, date, items, total, status, validity)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, b.ClientID, b.Date, b.Items, b.Total, b.Status, nullTime(b)).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return b, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.Budget, error) {
	b, err := scanBudget(r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets b WHERE b.id = $1`, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return b, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Budget, error) {
	query :=
		`SELECT ` + budgetColumns + ` FROM budgets b
		 JOIN clients c ON c.id = b.client_id
		 WHERE c.owner_id = $1
		 ORDER BY b.id OFFSET $2 LIMIT $3
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Budget, 0)
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, b *models.Budget) (*models.Budget, error) {
	query :=
		`UPDATE budgets SET date = $1, items = $2, total = $3, status = $4, validity = $5
		 WHERE id = $6
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, b.Date, b.Items, b.Total, b.Status, nullTime(b), b.ID).Scan(&b.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.ExecOne(ctx, r.db, `DELETE FROM budgets WHERE id = $1`, id)
}

func (r *PostgresRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	query :=
		`SELECT c.owner_id FROM budgets b
		 JOIN clients c ON c.id = b.client_id
		 WHERE b.id = $1
		 `

	var owner int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		return 0, dbx.MapError(err)
	}
	return owner, nil
}
