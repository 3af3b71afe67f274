package authz

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOwners struct {
	owners map[Ref]int64
	err    error
	calls  int
}

func (f *fakeOwners) OwnerOf(_ context.Context, kind Kind, id int64) (int64, error) {
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	owner, ok := f.owners[Ref{Kind: kind, ID: id}]
	if !ok {
		return 0, common.ErrorNotFound
	}
	return owner, nil
}

var (
	alice = &models.User{ID: 1, Username: "alice"}
	bob   = &models.User{ID: 2, Username: "bob"}
	root  = &models.User{ID: 3, Username: "root", IsSuperuser: true}
)

func TestRequireGates(t *testing.T) {
	assert.ErrorIs(t, RequireUser(nil), common.ErrUnauthenticated)
	assert.NoError(t, RequireUser(alice))

	assert.ErrorIs(t, RequireSuperuser(nil), common.ErrUnauthenticated)
	assert.ErrorIs(t, RequireSuperuser(alice), common.ErrForbidden)
	assert.NoError(t, RequireSuperuser(root))
}

func TestAuthorize_DisclosurePolicy(t *testing.T) {
	owners := &fakeOwners{owners: map[Ref]int64{}}
	for _, k := range []Kind{KindClient, KindPool, KindService, KindBudget, KindProject} {
		owners.owners[Ref{Kind: k, ID: 10}] = alice.ID
	}
	a := NewAuthorizer(owners, nil)

	tests := []struct {
		kind   Kind
		action Action
		want   error
	}{
		{KindClient, ActionRead, common.ErrorNotFound},
		{KindClient, ActionUpdate, common.ErrForbidden},
		{KindClient, ActionDelete, common.ErrForbidden},
		{KindClient, ActionAttach, common.ErrorNotFound},
		{KindProject, ActionRead, common.ErrorNotFound},
		{KindProject, ActionUpdate, common.ErrForbidden},
		{KindProject, ActionDelete, common.ErrForbidden},
		{KindPool, ActionRead, common.ErrorNotFound},
		{KindPool, ActionUpdate, common.ErrorNotFound},
		{KindPool, ActionDelete, common.ErrorNotFound},
		{KindPool, ActionAttach, common.ErrorNotFound},
		{KindService, ActionRead, common.ErrorNotFound},
		{KindService, ActionUpdate, common.ErrorNotFound},
		{KindBudget, ActionRead, common.ErrorNotFound},
		{KindBudget, ActionDelete, common.ErrorNotFound},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind)+"/"+tt.action.String(), func(t *testing.T) {
			ref := Ref{Kind: tt.kind, ID: 10}

			require.NoError(t, a.Authorize(context.Background(), alice, ref, tt.action))

			err := a.Authorize(context.Background(), bob, ref, tt.action)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthorize_MissingIsNotFoundForEveryone(t *testing.T) {
	a := NewAuthorizer(&fakeOwners{owners: map[Ref]int64{}}, nil)

	err := a.Authorize(context.Background(), alice, Ref{Kind: KindClient, ID: 99}, ActionUpdate)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	assert.NotErrorIs(t, err, common.ErrForbidden)
}

func TestAuthorize_NoUserSkipsLookup(t *testing.T) {
	owners := &fakeOwners{}
	a := NewAuthorizer(owners, nil)

	err := a.Authorize(context.Background(), nil, Ref{Kind: KindClient, ID: 1}, ActionRead)
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
	assert.Zero(t, owners.calls)
}

func TestAuthorize_SuperuserHasNoBypass(t *testing.T) {
	a := NewAuthorizer(&fakeOwners{owners: map[Ref]int64{{Kind: KindPool, ID: 1}: alice.ID}}, nil)

	err := a.Authorize(context.Background(), root, Ref{Kind: KindPool, ID: 1}, ActionRead)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestAuthorize_StoreFailureIsInternal(t *testing.T) {
	a := NewAuthorizer(&fakeOwners{err: errors.New("db down")}, nil)

	err := a.Authorize(context.Background(), alice, Ref{Kind: KindBudget, ID: 1}, ActionRead)
	assert.ErrorIs(t, err, common.ErrorInternal)
	assert.NotErrorIs(t, err, common.ErrorNotFound)
}

func TestAuthorize_CustomPolicy(t *testing.T) {
	owners := &fakeOwners{owners: map[Ref]int64{{Kind: KindPool, ID: 1}: alice.ID}}
	a := NewAuthorizer(owners, Policy{KindPool: {ActionRead: Reveal}})

	err := a.Authorize(context.Background(), bob, Ref{Kind: KindPool, ID: 1}, ActionRead)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestStoreOwners_WalksFullChain(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewManager().Repos()

	a, err := repos.Users.Create(ctx, &models.User{Email: "a@x.io", Username: "a"})
	require.NoError(t, err)
	b, err := repos.Users.Create(ctx, &models.User{Email: "b@x.io", Username: "b"})
	require.NoError(t, err)
	client, err := repos.Clients.Create(ctx, &models.Client{OwnerID: a.ID, Name: "c"})
	require.NoError(t, err)
	pool, err := repos.Pools.Create(ctx, &models.Pool{ClientID: client.ID})
	require.NoError(t, err)
	svc, err := repos.Services.Create(ctx, &models.ServiceRecord{PoolID: pool.ID, ServiceType: "x"})
	require.NoError(t, err)

	az := NewAuthorizer(StoreOwners{Repos: repos}, nil)
	ref := Ref{Kind: KindService, ID: svc.ID}

	require.NoError(t, az.Authorize(ctx, a, ref, ActionRead))
	assert.ErrorIs(t, az.Authorize(ctx, b, ref, ActionRead), common.ErrorNotFound)

	_, err = StoreOwners{Repos: repos}.OwnerOf(ctx, Kind("invoice"), 1)
	assert.Error(t, err)
}
