package services

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

type ClientService struct {
	repomanager repomanager.RepositoryManager
	authz       *authz.Authorizer
}

func NewClientService(m repomanager.RepositoryManager) *ClientService {
	return &ClientService{repomanager: m, authz: ownership(m)}
}

func (s *ClientService) Create(ctx context.Context, actor *models.User, in models.NewClient) (*models.Client, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c, err := s.repomanager.Repos().Clients.Create(ctx, &models.Client{
		OwnerID:  actor.ID,
		Name:     in.Name,
		Phone:    in.Phone,
		Email:    in.Email,
		Address:  in.Address,
		CPFCNPJ:  in.CPFCNPJ,
		IsActive: true,
	})
	if err != nil {
		return nil, internal("create client", err)
	}
	return c, nil
}

// List returns only the caller's clients.
func (s *ClientService) List(ctx context.Context, actor *models.User, page models.Page) ([]*models.Client, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Repos().Clients.ListByOwner(ctx, actor.ID, page)
	if err != nil {
		return nil, internal("list clients", err)
	}
	return list, nil
}

func (s *ClientService) Get(ctx context.Context, actor *models.User, id int64) (*models.Client, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindClient, ID: id}, authz.ActionRead); err != nil {
		return nil, err
	}
	c, err := s.repomanager.Repos().Clients.Get(ctx, id)
	if err != nil {
		return nil, internal("get client", err)
	}
	return c, nil
}

func (s *ClientService) Update(ctx context.Context, actor *models.User, id int64, p models.ClientPatch) (*models.Client, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindClient, ID: id}, authz.ActionUpdate); err != nil {
		return nil, err
	}
	repo := s.repomanager.Repos().Clients
	c, err := repo.Get(ctx, id)
	if err != nil {
		return nil, internal("get client", err)
	}
	c.Apply(p)
	if c, err = repo.Update(ctx, c); err != nil {
		return nil, internal("update client", err)
	}
	return c, nil
}

// Delete removes the client with its pools, services and budgets.
func (s *ClientService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindClient, ID: id}, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.repomanager.Repos().Clients.Delete(ctx, id); err != nil {
		return internal("delete client", err)
	}
	return nil
}
