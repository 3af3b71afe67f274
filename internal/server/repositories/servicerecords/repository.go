// Package servicerecords persists maintenance visits. Ownership runs
// Service -> Pool -> Client -> User.
package servicerecords

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.ServiceRecord) (*models.ServiceRecord, error)
	Get(ctx context.Context, id int64) (*models.ServiceRecord, error)
	// ListByOwner lists visits on every pool of every client the user owns.
	ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.ServiceRecord, error)
	Update(ctx context.Context, s *models.ServiceRecord) (*models.ServiceRecord, error)
	Delete(ctx context.Context, id int64) error
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
