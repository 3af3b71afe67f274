package projects

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Project) (*models.Project, error)
	Get(ctx context.Context, id int64) (*models.Project, error)
	ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Project, error)
	Update(ctx context.Context, p *models.Project) (*models.Project, error)
	Delete(ctx context.Context, id int64) error
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
