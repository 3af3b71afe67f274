package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/logging"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

// UserService handles registration, login, token refresh and self-service
// account management.
type UserService struct {
	repomanager repomanager.RepositoryManager
	hasher      Hasher
	tokens      TokenIssuer
	limiter     ratelimit.Limiter
	logger      logging.Logger

	// dummyHash is compared against when the username is unknown, so both
	// login failures cost the same.
	dummyHash string
}

func NewUserService(m repomanager.RepositoryManager, h Hasher, t TokenIssuer, l ratelimit.Limiter, logger logging.Logger) *UserService {
	if l == nil {
		l = ratelimit.Unlimited{}
	}
	dummy, _ := h.Hash("poolkeeper-unknown-user")
	return &UserService{repomanager: m, hasher: h, tokens: t, limiter: l, logger: logger, dummyHash: dummy}
}

// Register creates a regular account. Registration never grants superuser
// rights.
func (s *UserService) Register(ctx context.Context, in models.NewUser) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, internal("hash password", err)
	}

	u, err := s.repomanager.Repos().Users.Create(ctx, &models.User{
		Email:          in.Email,
		Username:       in.Username,
		HashedPassword: hash,
	})
	if err != nil {
		return nil, internal("create user", err)
	}

	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Login checks credentials and issues an access token. Unknown usernames
// and wrong passwords fail the same way.
func (s *UserService) Login(ctx context.Context, username, password string) (*Token, error) {
	allowed, err := s.limiter.Allow(ctx, "login:"+strings.ToLower(username))
	if err != nil {
		s.logger.Warn(ctx, "rate limiter unavailable", "error", err)
	}
	if !allowed {
		return nil, common.ErrRateLimited
	}

	u, err := s.repomanager.Repos().Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, common.ErrUnauthenticated
		}
		return nil, internal("load user", err)
	}

	if !s.hasher.Verify(password, u.HashedPassword) {
		return nil, common.ErrUnauthenticated
	}

	access, err := s.tokens.IssueDefault(u.Username)
	if err != nil {
		return nil, internal("issue token", err)
	}
	return newToken(access), nil
}

// Refresh issues a fresh token for an already authenticated user.
func (s *UserService) Refresh(ctx context.Context, actor *models.User) (*Token, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	access, err := s.tokens.IssueDefault(actor.Username)
	if err != nil {
		return nil, internal("issue token", err)
	}
	return newToken(access), nil
}

func (s *UserService) Me(ctx context.Context, actor *models.User) (*models.User, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	return actor, nil
}

// UpdateMe changes the caller's own profile. Superuser status and the
// username, which is the token subject, cannot be changed this way.
func (s *UserService) UpdateMe(ctx context.Context, actor *models.User, p models.UserPatch) (*models.User, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	if p.IsSuperuser != nil || p.Username != nil {
		return nil, common.ErrForbidden
	}
	return updateUser(ctx, s.repomanager, s.hasher, actor.ID, p)
}

// DeleteMe removes the caller's account and everything it owns.
func (s *UserService) DeleteMe(ctx context.Context, actor *models.User) error {
	if err := authz.RequireUser(actor); err != nil {
		return err
	}
	if err := deleteUser(ctx, s.repomanager, actor.ID); err != nil {
		return err
	}
	s.logger.Info(ctx, "user deleted own account", "user_id", actor.ID)
	return nil
}

// updateUser applies p to the stored user. Demoting a superuser counts the
// remaining superusers under the guard lock in the same transaction.
func updateUser(ctx context.Context, m repomanager.RepositoryManager, h Hasher, id int64, p models.UserPatch) (*models.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var hash string
	if p.Password != nil {
		var err error
		if hash, err = h.Hash(*p.Password); err != nil {
			return nil, internal("hash password", err)
		}
	}

	var updated *models.User
	err := m.WithinTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if p.IsSuperuser != nil {
			if err := r.Users.LockSuperusers(ctx); err != nil {
				return err
			}
		}

		u, err := r.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if p.Demotes(u) {
			if err := ensureAnotherSuperuser(ctx, r); err != nil {
				return err
			}
		}

		u.Apply(p)
		if hash != "" {
			u.HashedPassword = hash
		}

		updated, err = r.Users.Update(ctx, u)
		return err
	})
	if err != nil {
		return nil, internal("update user", err)
	}
	return updated, nil
}

// deleteUser removes the user unless they are the last superuser.
func deleteUser(ctx context.Context, m repomanager.RepositoryManager, id int64) error {
	err := m.WithinTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		if err := r.Users.LockSuperusers(ctx); err != nil {
			return err
		}

		u, err := r.Users.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if u.IsSuperuser {
			if err := ensureAnotherSuperuser(ctx, r); err != nil {
				return err
			}
		}

		return r.Users.Delete(ctx, id)
	})
	if err != nil {
		return internal("delete user", err)
	}
	return nil
}

func ensureAnotherSuperuser(ctx context.Context, r repomanager.Repositories) error {
	n, err := r.Users.CountSuperusers(ctx)
	if err != nil {
		return err
	}
	if n <= 1 {
		return common.ErrLastSuperuser
	}
	return nil
}
