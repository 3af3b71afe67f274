package services

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

type ProjectService struct {
	repomanager repomanager.RepositoryManager
	authz       *authz.Authorizer
}

func NewProjectService(m repomanager.RepositoryManager) *ProjectService {
	return &ProjectService{repomanager: m, authz: ownership(m)}
}

func (s *ProjectService) Create(ctx context.Context, actor *models.User, in models.NewProject) (*models.Project, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := s.repomanager.Repos().Projects.Create(ctx, &models.Project{
		OwnerID:     actor.ID,
		Name:        in.Name,
		Description: in.Description,
	})
	if err != nil {
		return nil, internal("create project", err)
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context, actor *models.User, page models.Page) ([]*models.Project, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Repos().Projects.ListByOwner(ctx, actor.ID, page)
	if err != nil {
		return nil, internal("list projects", err)
	}
	return list, nil
}

func (s *ProjectService) Get(ctx context.Context, actor *models.User, id int64) (*models.Project, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindProject, ID: id}, authz.ActionRead); err != nil {
		return nil, err
	}
	p, err := s.repomanager.Repos().Projects.Get(ctx, id)
	if err != nil {
		return nil, internal("get project", err)
	}
	return p, nil
}

func (s *ProjectService) Update(ctx context.Context, actor *models.User, id int64, patch models.ProjectPatch) (*models.Project, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindProject, ID: id}, authz.ActionUpdate); err != nil {
		return nil, err
	}
	repo := s.repomanager.Repos().Projects
	p, err := repo.Get(ctx, id)
	if err != nil {
		return nil, internal("get project", err)
	}
	p.Apply(patch)
	if p, err = repo.Update(ctx, p); err != nil {
		return nil, internal("update project", err)
	}
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindProject, ID: id}, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.repomanager.Repos().Projects.Delete(ctx, id); err != nil {
		return internal("delete project", err)
	}
	return nil
}
