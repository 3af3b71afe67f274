package servicerecords

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/dbx"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

const serviceColumns = `s.id, s.pool_id, s.date, s.service_type, s.description, s.value, s.time_spent, s.created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanService(sc scanner) (*models.ServiceRecord, error) {
	s := &models.ServiceRecord{}
	err := sc.Scan(&s.ID, &s.PoolID, &s.Date, &s.ServiceType, &s.Description, &s.Value, &s.TimeSpent, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s *models.ServiceRecord) (*models.ServiceRecord, error) {
	query :=
		`INSERT INTO services (pool_id, date, service_type, description, value, time_spent)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query, s.PoolID, s.Date, s.ServiceType, s.Description, s.Value, s.TimeSpent).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return s, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*models.ServiceRecord, error) {
	s, err := scanService(r.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services s WHERE s.id = $1`, id))
	if err != nil {
		return nil, dbx.MapError(err)
	}
	return s, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.ServiceRecord, error) {
	query :=
		`SELECT ` + serviceColumns + ` FROM services s
		 JOIN pools p ON p.id = s.pool_id
		 JOIN clients c ON c.id = p.client_id
		 WHERE c.owner_id = $1
		 ORDER BY s.id OFFSET $2 LIMIT $3
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, page.Skip, page.Limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.ServiceRecord, 0)
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, s *models.ServiceRecord) (*models.ServiceRecord, error) {
	query :=
		`UPDATE services SET date = $1, service_type = $2, description = $3, value = $4, time_spent = $5
		 WHERE id = $6
		 RETURNING created_at
		 `

	err := r.db.QueryRowContext(ctx, query, s.Date, s.ServiceType, s.Description, s.Value, s.TimeSpent, s.ID).
		Scan(&s.CreatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	return dbx.ExecOne(ctx, r.db, `DELETE FROM services WHERE id = $1`, id)
}

func (r *PostgresRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	query :=
		`SELECT c.owner_id FROM services s
		 JOIN pools p ON p.id = s.pool_id
		 JOIN clients c ON c.id = p.client_id
		 WHERE s.id = $1
		 `

	var owner int64
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&owner); err != nil {
		return 0, dbx.MapError(err)
	}
	return owner, nil
}
