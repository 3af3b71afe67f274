// Package clients persists customers. A client is owned directly by a user.
package clients

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	ListByOwner(ctx context.Context, ownerID int64, page models.Page) ([]*models.Client, error)
	Update(ctx context.Context, c *models.Client) (*models.Client, error)
	Delete(ctx context.Context, id int64) error
	// OwnerOf returns the id of the user owning the client.
	OwnerOf(ctx context.Context, id int64) (int64, error)
}
