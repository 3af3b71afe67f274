package memory

import (
	"context"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type settingsRepo struct{ v view }

func (s *store) checkSettingUnique(in *models.AppSetting) error {
	for id, other := range s.settings {
		if id != in.ID && other.Key == in.Key {
			return conflict("app_settings_key_key")
		}
	}
	return nil
}

func (r *settingsRepo) Create(ctx context.Context, s *models.AppSetting) (*models.AppSetting, error) {
	err := r.v.do(func(st *store) error {
		if err := st.checkSettingUnique(s); err != nil {
			return err
		}
		s.ID = st.nextID()
		st.settings[s.ID] = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepo) GetByKey(ctx context.Context, key string) (*models.AppSetting, error) {
	var found models.AppSetting
	err := r.v.do(func(st *store) error {
		for _, s := range st.settings {
			if s.Key == key {
				found = s
				return nil
			}
		}
		return common.ErrorNotFound
	})
	if err != nil {
		return nil, err
	}
	return &found, nil
}

func (r *settingsRepo) List(ctx context.Context, page models.Page) ([]*models.AppSetting, error) {
	var result []*models.AppSetting
	err := r.v.do(func(st *store) error {
		result = sortedPage(st.settings, nil, page)
		return nil
	})
	return result, err
}

func (r *settingsRepo) Update(ctx context.Context, s *models.AppSetting) (*models.AppSetting, error) {
	err := r.v.do(func(st *store) error {
		if _, ok := st.settings[s.ID]; !ok {
			return common.ErrorNotFound
		}
		if err := st.checkSettingUnique(s); err != nil {
			return err
		}
		st.settings[s.ID] = *s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *settingsRepo) Delete(ctx context.Context, id int64) error {
	return r.v.do(func(st *store) error {
		if _, ok := st.settings[id]; !ok {
			return common.ErrorNotFound
		}
		delete(st.settings, id)
		return nil
	})
}
