package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

// timeNow is a seam for tests.
var timeNow = time.Now

// ServiceRecordService manages maintenance visits. Access is decided by the
// owner of the client the visited pool belongs to.
type ServiceRecordService struct {
	repomanager repomanager.RepositoryManager
	authz       *authz.Authorizer
}

func NewServiceRecordService(m repomanager.RepositoryManager) *ServiceRecordService {
	return &ServiceRecordService{repomanager: m, authz: ownership(m)}
}

func (s *ServiceRecordService) Create(ctx context.Context, actor *models.User, in models.NewServiceRecord) (*models.ServiceRecord, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindPool, ID: in.PoolID}, authz.ActionAttach); err != nil {
		return nil, err
	}

	date := timeNow().UTC()
	if in.Date != nil {
		date = *in.Date
	}

	rec, err := s.repomanager.Repos().Services.Create(ctx, &models.ServiceRecord{
		PoolID:      in.PoolID,
		Date:        date,
		ServiceType: in.ServiceType,
		Description: in.Description,
		Value:       in.Value,
		TimeSpent:   in.TimeSpent,
	})
	if err != nil {
		return nil, internal("create service", err)
	}
	return rec, nil
}

func (s *ServiceRecordService) List(ctx context.Context, actor *models.User, page models.Page) ([]*models.ServiceRecord, error) {
	if err := authz.RequireUser(actor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Repos().Services.ListByOwner(ctx, actor.ID, page)
	if err != nil {
		return nil, internal("list services", err)
	}
	return list, nil
}

func (s *ServiceRecordService) Get(ctx context.Context, actor *models.User, id int64) (*models.ServiceRecord, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindService, ID: id}, authz.ActionRead); err != nil {
		return nil, err
	}
	rec, err := s.repomanager.Repos().Services.Get(ctx, id)
	if err != nil {
		return nil, internal("get service", err)
	}
	return rec, nil
}

func (s *ServiceRecordService) Update(ctx context.Context, actor *models.User, id int64, p models.ServiceRecordPatch) (*models.ServiceRecord, error) {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindService, ID: id}, authz.ActionUpdate); err != nil {
		return nil, err
	}
	repo := s.repomanager.Repos().Services
	rec, err := repo.Get(ctx, id)
	if err != nil {
		return nil, internal("get service", err)
	}
	rec.Apply(p)
	if rec, err = repo.Update(ctx, rec); err != nil {
		return nil, internal("update service", err)
	}
	return rec, nil
}

func (s *ServiceRecordService) Delete(ctx context.Context, actor *models.User, id int64) error {
	if err := s.authz.Authorize(ctx, actor, authz.Ref{Kind: authz.KindService, ID: id}, authz.ActionDelete); err != nil {
		return err
	}
	if err := s.repomanager.Repos().Services.Delete(ctx, id); err != nil {
		return internal("delete service", err)
	}
	return nil
}
