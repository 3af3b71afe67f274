package services

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

type PoolService struct {
	repomanager repomanager.RepositoryManager
	authz       *authz.Authorizer
}

func NewPoolService(m repomanager.RepositoryManager) *PoolService {
	return &PoolService{repomanager: m, authz: ownership(m)}
}

// Create attaches a pool to a client the caller owns.
func (s *PoolService) Create(ctx context.Context, actor *models.User, in models.NewPool) (*models.Pool, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindClient, ID: in.ClientID}, authz.ActionAttach); err != nil {
		return nil, err
	}
	p, err := s.repomanager.Repos().Pools.Create(ctx, &models.Pool{
		ClientID: in.ClientID,
		Volume:   in.Volume,
		PoolType: in.PoolType,
		Coating:  in.Coating,
		Depth:    in.Depth,
	})
	if err != nil {
		return nil, internal("create pool", err)
	}
	return p, nil
}

func (s *PoolService) ListByClient(ctx context.Context, actor *models.User, clientID int64, page models.Page) ([]*models.Pool, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindClient, ID: clientID}, authz.ActionRead); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Repos().Pools.ListByClient(ctx, clientID, page)
	if err != nil {
		return nil, internal("list pools", err)
	}
	return list, nil
}

func (s *PoolService) Get(ctx context.Context, actor *models.User, id int64) (*models.Pool, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindPool, ID: id}, authz.ActionRead); err != nil {
		return nil, err
	}
	p, err := s.repomanager.Repos().Pools.Get(ctx, id)
	if err != nil {
		return nil, internal("get pool", err)
	}
	return p, nil
}

func (s *PoolService) Update(ctx context.Context, actor *models.User, id int64, patch models.PoolPatch) (*models.Pool, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindPool, ID: id}, authz.ActionUpdate); err != nil {
		return nil, err
	}
	repo := s.repomanager.Repos().Pools
	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, internal("get pool", err)
	}
	p.Apply(patch)
	if p, err = repo.Update(ctx, p); err != nil {
		return nil, internal("update pool", err)
	}
	return p, nil
}

func (s *PoolService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindPool, ID: id}, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.repomanager.Repos().Pools.Delete(ctx, id); err != nil {
		return internal("delete pool", err)
	}
	return nil
}
