package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings(t *testing.T) {
	e := newEnv(t, nil)
	ctx := context.Background()
	root := e.bootstrap(t, "root")
	alice := e.register(t, "alice")
	s := NewSettingsService(e.m)

	_, err := s.Create(ctx, alice, models.AppSetting{Key: "currency", Value: "BRL"})
	assert.ErrorIs(t, err, common.ErrForbidden)

	created, err := s.Create(ctx, root, models.AppSetting{Key: "currency", Value: "BRL"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = s.Create(ctx, root, models.AppSetting{Key: "currency", Value: "USD"})
	assert.ErrorIs(t, err, common.ErrorConflict)
	_, err = s.Create(ctx, root, models.AppSetting{Key: ""})
	assert.ErrorIs(t, err, common.ErrorValidation)

	updated, err := s.Update(ctx, root, "currency", models.AppSettingPatch{Value: ptr("EUR")})
	require.NoError(t, err)
	assert.Equal(t, "EUR", updated.Value)

	list, err := s.List(ctx, root, models.NewPage(0, 0))
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := s.Get(ctx, root, "currency")
	require.NoError(t, err)
	assert.Equal(t, "EUR", got.Value)

	require.NoError(t, s.Delete(ctx, root, "currency"))
	assert.ErrorIs(t, s.Delete(ctx, root, "currency"), common.ErrorNotFound)
}
