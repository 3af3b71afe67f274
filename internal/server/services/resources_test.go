package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resourceEnv struct {
	*env
	clients  *ClientService
	pools    *PoolService
	services *ServiceRecordService
	budgets  *BudgetService
	projects *ProjectService
}

func newResourceEnv(t *testing.T) *resourceEnv {
	e := newEnv(t, nil)
	return &resourceEnv{
		env:      e,
		clients:  NewClientService(e.m),
		pools:    NewPoolService(e.m),
		services: NewServiceRecordService(e.m),
		budgets:  NewBudgetService(e.m),
		projects: NewProjectService(e.m),
	}
}

type tree struct {
	client  *models.Client
	pool    *models.Pool
	service *models.ServiceRecord
	budget  *models.Budget
	project *models.Project
}

func (e *resourceEnv) seed(t *testing.T, u *models.User) tree {
	t.Helper()
	ctx := context.Background()
	var tr tree
	var err error

	tr.client, err = e.clients.Create(ctx, u, models.NewClient{Name: u.Username + " client"})
	require.NoError(t, err)
	tr.pool, err = e.pools.Create(ctx, u, models.NewPool{ClientID: tr.client.ID, Volume: 30000, PoolType: "fiber"})
	require.NoError(t, err)
	tr.service, err = e.services.Create(ctx, u, models.NewServiceRecord{PoolID: tr.pool.ID, ServiceType: "cleaning"})
	require.NoError(t, err)
	tr.budget, err = e.budgets.Create(ctx, u, models.NewBudget{ClientID: tr.client.ID, Total: "100"})
	require.NoError(t, err)
	tr.project, err = e.projects.Create(ctx, u, models.NewProject{Name: "renovation"})
	require.NoError(t, err)
	return tr
}

func TestCreateDefaults(t *testing.T) {
	fixed := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = orig }()

	e := newResourceEnv(t)
	alice := e.register(t, "alice")
	tr := e.seed(t, alice)

	assert.True(t, tr.client.IsActive)
	assert.Equal(t, alice.ID, tr.client.OwnerID)
	assert.Equal(t, fixed, tr.service.Date)
	assert.Equal(t, fixed, tr.budget.Date)
	assert.Equal(t, models.BudgetStatusOpen, tr.budget.Status)
	assert.Equal(t, "[]", tr.budget.Items)
}

func TestCrossOwnerReadsAreNotFound(t *testing.T) {
	e := newResourceEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")
	tr := e.seed(t, alice)

	_, err := e.clients.Get(ctx, bob, tr.client.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.pools.Get(ctx, bob, tr.pool.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.pools.ListByClient(ctx, bob, tr.client.ID, models.NewPage(0, 0))
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.services.Get(ctx, bob, tr.service.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.budgets.Get(ctx, bob, tr.budget.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.projects.Get(ctx, bob, tr.project.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.clients.Get(ctx, alice, tr.client.ID)
	assert.NoError(t, err)
}

func TestCrossOwnerWrites(t *testing.T) {
	e := newResourceEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")
	tr := e.seed(t, alice)

	_, err := e.clients.Update(ctx, bob, tr.client.ID, models.ClientPatch{Name: ptr("stolen")})
	assert.ErrorIs(t, err, common.ErrForbidden)
	assert.ErrorIs(t, e.clients.Delete(ctx, bob, tr.client.ID), common.ErrForbidden)
	_, err = e.projects.Update(ctx, bob, tr.project.ID, models.ProjectPatch{Name: ptr("stolen")})
	assert.ErrorIs(t, err, common.ErrForbidden)

	_, err = e.pools.Update(ctx, bob, tr.pool.ID, models.PoolPatch{Volume: ptr(1)})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.ErrorIs(t, e.services.Delete(ctx, bob, tr.service.ID), common.ErrorNotFound)
	_, err = e.budgets.Update(ctx, bob, tr.budget.ID, models.BudgetPatch{Total: ptr("0")})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = e.pools.Create(ctx, bob, models.NewPool{ClientID: tr.client.ID, PoolType: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.services.Create(ctx, bob, models.NewServiceRecord{PoolID: tr.pool.ID, ServiceType: "x"})
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = e.budgets.Create(ctx, bob, models.NewBudget{ClientID: tr.client.ID})
	assert.ErrorIs(t, err, common.ErrorNotFound)

	c, err := e.clients.Get(ctx, alice, tr.client.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice client", c.Name)
}

func TestSuperuserDoesNotBypassOwnership(t *testing.T) {
	e := newResourceEnv(t)
	root := e.bootstrap(t, "root")
	alice := e.register(t, "alice")
	tr := e.seed(t, alice)

	_, err := e.services.Get(context.Background(), root, tr.service.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListsAreScopedToCaller(t *testing.T) {
	e := newResourceEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	bob := e.register(t, "bob")
	e.seed(t, alice)
	bobTree := e.seed(t, bob)

	clients, err := e.clients.List(ctx, bob, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, bobTree.client.ID, clients[0].ID)

	svcs, err := e.services.List(ctx, bob, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, svcs, 1)
	assert.Equal(t, bobTree.service.ID, svcs[0].ID)

	budgets, err := e.budgets.List(ctx, bob, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, budgets, 1)

	projects, err := e.projects.List(ctx, bob, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, projects, 1)

	pools, err := e.pools.ListByClient(ctx, bob, bobTree.client.ID, models.NewPage(0, 0))
	require.NoError(t, err)
	require.Len(t, pools, 1)

	_, err = e.clients.List(ctx, nil, models.NewPage(0, 0))
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}

func TestOwnerUpdatesAndDeletes(t *testing.T) {
	e := newResourceEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")
	tr := e.seed(t, alice)

	c, err := e.clients.Update(ctx, alice, tr.client.ID, models.ClientPatch{Phone: ptr("555"), IsActive: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "555", c.Phone)
	assert.False(t, c.IsActive)

	p, err := e.pools.Update(ctx, alice, tr.pool.ID, models.PoolPatch{Coating: ptr("tiles")})
	require.NoError(t, err)
	assert.Equal(t, "tiles", p.Coating)
	assert.Equal(t, 30000, p.Volume)

	s, err := e.services.Update(ctx, alice, tr.service.ID, models.ServiceRecordPatch{Value: ptr("80")})
	require.NoError(t, err)
	assert.Equal(t, "80", s.Value)

	b, err := e.budgets.Update(ctx, alice, tr.budget.ID, models.BudgetPatch{Status: ptr("Approved")})
	require.NoError(t, err)
	assert.Equal(t, "Approved", b.Status)

	pr, err := e.projects.Update(ctx, alice, tr.project.ID, models.ProjectPatch{Description: ptr("d")})
	require.NoError(t, err)
	assert.Equal(t, "d", pr.Description)

	require.NoError(t, e.projects.Delete(ctx, alice, tr.project.ID))
	require.NoError(t, e.clients.Delete(ctx, alice, tr.client.ID))

	_, err = e.pools.Get(ctx, alice, tr.pool.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound, "pools go with their client")
	_, err = e.budgets.Get(ctx, alice, tr.budget.ID)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestCreate_Validation(t *testing.T) {
	e := newResourceEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice")

	_, err := e.clients.Create(ctx, alice, models.NewClient{})
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = e.pools.Create(ctx, alice, models.NewPool{})
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = e.services.Create(ctx, alice, models.NewServiceRecord{PoolID: 1})
	assert.ErrorIs(t, err, common.ErrorValidation)
	_, err = e.projects.Create(ctx, alice, models.NewProject{Name: " "})
	assert.ErrorIs(t, err, common.ErrorValidation)
}
