package services

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/logging"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

// AdminService covers superuser bootstrap and user administration.
type AdminService struct {
	repomanager repomanager.RepositoryManager
	hasher      Hasher
	logger      logging.Logger
}

func NewAdminService(m repomanager.RepositoryManager, h Hasher, logger logging.Logger) *AdminService {
	return &AdminService{repomanager: m, hasher: h, logger: logger}
}

// CreateInitialSuperuser is open to anyone until the first superuser
// exists, then closed for good. The count and the insert share one
// transaction under the superuser lock, so concurrent calls yield exactly
// one success.
func (s *AdminService) CreateInitialSuperuser(ctx context.Context, in models.NewUser) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	var created *models.User
	err = s.repomanager.WithinTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := r.Users.LockSuperusers(ctx); err != nil {
			return err
		}

		n, err := r.Users.CountSuperusers(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return common.ErrBootstrapClosed
		}

		created, err = r.Users.Create(ctx, &models.User{
			Email:          in.Email,
			Username:       in.Username,
			HashedPassword: hash,
			IsSuperuser:    true,
		})
		return err
	})
	if err != nil {
		return nil, internal("create initial superuser", err)
	}

	s.logger.Info(ctx, "initial superuser created", "user_id", created.ID)
	return created, nil
}

func (s *AdminService) ListUsers(ctx context.Context, actor *models.User, page models.Page) ([]*models.User, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Repos().Users.List(ctx, page)
	if err != nil {
		return nil, internal("list users", err)
	}
	return list, nil
}

func (s *AdminService) GetUser(ctx context.Context, actor *models.User, id int64) (*models.User, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return nil, err
	}
	u, err := s.repomanager.Repos().Users.GetByID(ctx, id)
	if err != nil {
		return nil, internal("get user", err)
	}
	return u, nil
}

// UpdateUser may grant or revoke superuser rights, but never revokes the
// last superuser's.
func (s *AdminService) UpdateUser(ctx context.Context, actor *models.User, id int64, p models.UserPatch) (*models.User, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return nil, err
	}
	u, err := updateUser(ctx, s.repomanager, s.hasher, id, p)
	if err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "user updated by admin", "user_id", id, "admin_id", actor.ID)
	return u, nil
}

func (s *AdminService) DeleteUser(ctx context.Context, actor *models.User, id int64) error {
	if err := authz.RequireSuperuser(actor); err != nil {
		return err
	}
	if err := deleteUser(ctx, s.repomanager, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted by admin", "user_id", id, "admin_id", actor.ID)
	return nil
}
