// Package budgets persists quotes. Ownership runs Budget -> Client -> User.
package budgets

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, b *models.Budget) (*models.Budget, error)
	Get(ctx context.Context, id int64) (*models.Budget, error)
	ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Budget, error)
	Update(ctx context.Context, b *models.Budget) (*models.Budget, error)
	Delete(ctx context.Context, id int64) error
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
