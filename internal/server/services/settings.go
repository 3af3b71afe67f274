package services

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

// SettingsService manages global key/value settings; superusers only.
type SettingsService struct {
	repomanager repomanager.RepositoryManager
}

func NewSettingsService(m repomanager.RepositoryManager) *SettingsService {
	return &SettingsService{repomanager: m}
}

func (s *SettingsService) Create(ctx context.Context, actor *models.User, in models.AppSetting) (*models.AppSetting, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return nil, err
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	in.ID = 0
	created, err := s.repomanager.Repos().Settings.Create(ctx, &in)
	if err != nil {
		return nil, internal("create setting", err)
	}
	return created, nil
}

func (s *SettingsService) List(ctx context.Context, actor *models.User, page models.Page) ([]*models.AppSetting, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return nil, err
	}
	list, err := s.repomanager.Repos().Settings.List(ctx, page)
	if err != nil {
		return nil, internal("list settings", err)
	}
	return list, nil
}

func (s *SettingsService) Get(ctx context.Context, actor *models.User, key string) (*models.AppSetting, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return nil, err
	}
	setting, err := s.repomanager.Repos().Settings.GetByKey(ctx, key)
	if err != nil {
		return nil, internal("get setting", err)
	}
	return setting, nil
}

func (s *SettingsService) Update(ctx context.Context, actor *models.User, key string, p models.AppSettingPatch) (*models.AppSetting, error) {
	if err := authz.RequireSuperuser(actor); err != nil {
		return nil, err
	}
	repo := s.repomanager.Repos().Settings
	setting, err := repo.GetByKey(ctx, key)
	if err != nil {
		return nil, internal("get setting", err)
	}
	setting.Apply(p)
	if err := setting.Validate(); err != nil {
		return nil, err
	}
	if setting, err = repo.Update(ctx, setting); err != nil {
		return nil, internal("update setting", err)
	}
	return setting, nil
}

func (s *SettingsService) Delete(ctx context.Context, actor *models.User, key string) error {
	if err := authz.RequireSuperuser(actor); err != nil {
		return err
	}
	repo := s.repomanager.Repos().Settings
	setting, err := repo.GetByKey(ctx, key)
	if err != nil {
		return internal("get setting", err)
	}
	if err := repo.Delete(ctx, setting.ID); err != nil {
		return internal("delete setting", err)
	}
	return nil
}
