// Package pools persists pools. Ownership runs Pool -> Client -> User.
package pools

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Pool) (*models.Pool, error)
	Get(ctx context.Context, id int64) (*models.Pool, error)
	ListByClient(ctx context.Context, clientID int64, page models.Page) ([]*models.Pool, error)
	Update(ctx context.Context, p *models.Pool) (*models.Pool, error)
	Delete(ctx context.Context, id int64) error
	// OwnerOf resolves the user at the root of the pool's chain.
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
