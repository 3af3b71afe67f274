package services

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

type BudgetService struct {
	repomanager repomanager.RepositoryManager
	authz       *authz.Authorizer
}

func NewBudgetService(m repomanager.RepositoryManager) *BudgetService {
	return &BudgetService{repomanager: m, authz: ownership(m)}
}

func (s *BudgetService) Create(ctx context.Context, actor *models.User, in models.NewBudget) (*models.Budget, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindClient, ID: in.ClientID}, authz.ActionAttach); err != nil {
		return nil, err
	}

	b := &models.Budget{
		ClientID: in.ClientID,
		Date:     timeNow().UTC(),
		Items:    in.Items,
		Total:    in.Total,
		Status:   in.Status,
		Validity: in.Validity,
	}
	if in.Date != nil {
		b.Date = *in.Date
	}
	if b.Status == "" {
		b.Status = models.BudgetStatusOpen
	}
	if b.Items == "" {
		b.Items = "[]"
	}

	b, err := s.repomanager.Repos().Budgets.Create(ctx, b)
	if err != nil {
		return nil, internal("create budget", err)
	}
	return b, nil
}

func (s *BudgetService) List(ctx context.Context, actor *models.User, page models.Page) ([]*models.Budget, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Repos().Budgets.ListByOwner(ctx, actor.ID, page)
	if err != nil {
		return nil, internal("list budgets", err)
	}
	return list, nil
}

func (s *BudgetService) Get(ctx context.Context, actor *models.User, id int64) (*models.Budget, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindBudget, ID: id}, authz.ActionRead); err != nil {
		return nil, err
	}
	b, err := s.repomanager.Repos().Budgets.Get(ctx, id)
	if err != nil {
		return nil, internal("get budget", err)
	}
	return b, nil
}

func (s *BudgetService) Update(ctx context.Context, actor *models.User, id int64, p models.BudgetPatch) (*models.Budget, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindBudget, ID: id}, authz.ActionUpdate); err != nil {
		return nil, err
	}
	repo := s.repomanager.Repos().Budgets
	b, err := repo.Get(ctx, id)
	if err != nil {
		return nil, internal("get budget", err)
	}
	b.Apply(p)
	if b, err = repo.Update(ctx, b); err != nil {
		return nil, internal("update budget", err)
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindBudget, ID: id}, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.repomanager.Repos().Budgets.Delete(ctx, id); err != nil {
		return internal("delete budget", err)
	}
	return nil
}
