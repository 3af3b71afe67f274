// Package users is the credential store: persistence of accounts and the
// superuser bookkeeping that bootstrap and last-superuser protection rely on.
package users

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, page models.Page) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
	CountSuperusers(ctx context.Context) (int, error)

	// LockSuperusers serializes superuser count-then-write sequences. It must
	// be called inside a transaction; the lock is released when it ends.
	LockSuperusers(ctx context.Context) error
}
