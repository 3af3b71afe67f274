// Package settings persists global application settings. Keys are unique.
package settings

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, s *models.AppSetting) (*models.AppSetting, error)
	GetByKey(ctx context.Context, key string) (*models.AppSetting, error)
	List(ctx context.Context, page models.Page) ([]*models.AppSetting, error)
	Update(ctx context.Context, s *models.AppSetting) (*models.AppSetting, error)
	Delete(ctx context.Context, id int64) error
}
