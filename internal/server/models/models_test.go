package models

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNewUser_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewUser{Email: "a@example.com", Username: "alice", Password: "pw"}.Validate())

	bad := []NewUser{
		{Email: "not-an-email", Username: "alice", Password: "pw"},
		{Email: "Alice <a@example.com>", Username: "alice", Password: "pw"},
		{Email: "a@example.com", Username: "  ", Password: "pw"},
		{Email: "a@example.com", Username: "alice"},
	}
	for _, n := range bad {
		assert.ErrorIs(t, n.Validate(), common.ErrorValidation, "%+v", n)
	}
}

func TestUserPatch_ApplyAndDemotes(t *testing.T) {
	t.Parallel()

	u := &User{ID: 1, Email: "old@example.com", Username: "old", HashedPassword: "h", IsSuperuser: true}
	p := UserPatch{Username: ptr("new"), Password: ptr("secret"), IsSuperuser: ptr(false)}

	require.NoError(t, p.Validate())
	assert.True(t, p.Demotes(u))

	u.Apply(p)
	assert.Equal(t, "new", u.Username)
	assert.Equal(t, "old@example.com", u.Email)
	assert.Equal(t, "h", u.HashedPassword, "password is hashed elsewhere")
	assert.False(t, u.IsSuperuser)

	assert.False(t, UserPatch{IsSuperuser: ptr(true)}.Demotes(&User{}))
	assert.False(t, UserPatch{}.Demotes(&User{IsSuperuser: true}))
	assert.ErrorIs(t, UserPatch{Email: ptr("x")}.Validate(), common.ErrorValidation)
	assert.ErrorIs(t, UserPatch{Password: ptr("")}.Validate(), common.ErrorValidation)
}

func TestPatches_OnlyTouchSetFields(t *testing.T) {
	t.Parallel()

	c := &Client{Name: "Acme", Phone: "1", IsActive: true}
	c.Apply(ClientPatch{Phone: ptr("2"), IsActive: ptr(false)})
	assert.Equal(t, Client{Name: "Acme", Phone: "2"}, *c)

	p := &Pool{Volume: 10, PoolType: "vinyl"}
	p.Apply(PoolPatch{Volume: ptr(20)})
	assert.Equal(t, Pool{Volume: 20, PoolType: "vinyl"}, *p)

	when := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s := &ServiceRecord{ServiceType: "cleaning"}
	s.Apply(ServiceRecordPatch{Date: &when, Value: ptr("150")})
	assert.Equal(t, ServiceRecord{ServiceType: "cleaning", Date: when, Value: "150"}, *s)

	b := &Budget{Status: BudgetStatusOpen, Total: "10"}
	b.Apply(BudgetPatch{Status: ptr("Approved"), Validity: &when})
	assert.Equal(t, "Approved", b.Status)
	assert.Equal(t, "10", b.Total)
	require.NotNil(t, b.Validity)
	assert.Equal(t, when, *b.Validity)

	pr := &Project{Name: "p", Description: "d"}
	pr.Apply(ProjectPatch{Description: ptr("")})
	assert.Equal(t, Project{Name: "p"}, *pr)

	st := &AppSetting{Key: "k", Value: "v"}
	st.Apply(AppSettingPatch{Value: ptr("v2")})
	assert.Equal(t, AppSetting{Key: "k", Value: "v2"}, *st)
}

func TestCreateInputs_Validate(t *testing.T) {
	t.Parallel()

	assert.ErrorIs(t, NewClient{}.Validate(), common.ErrorValidation)
	assert.NoError(t, NewClient{Name: "Acme"}.Validate())
	assert.ErrorIs(t, NewPool{PoolType: "vinyl"}.Validate(), common.ErrorValidation)
	assert.ErrorIs(t, NewPool{ClientID: 1}.Validate(), common.ErrorValidation)
	assert.NoError(t, NewPool{ClientID: 1, PoolType: "vinyl"}.Validate())
	assert.ErrorIs(t, NewServiceRecord{ServiceType: "x"}.Validate(), common.ErrorValidation)
	assert.NoError(t, NewServiceRecord{PoolID: 3, ServiceType: "x"}.Validate())
	assert.ErrorIs(t, NewBudget{}.Validate(), common.ErrorValidation)
	assert.ErrorIs(t, NewProject{Name: " "}.Validate(), common.ErrorValidation)
	assert.ErrorIs(t, AppSetting{}.Validate(), common.ErrorValidation)
}

func TestNewPageAndSlice(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Page{Skip: 0, Limit: common.DefaultListLimit}, NewPage(-5, 0))
	assert.Equal(t, Page{Skip: 2, Limit: common.MaxListLimit}, NewPage(2, 1_000_000))

	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{2, 3}, Slice(items, Page{Skip: 1, Limit: 2}))
	assert.Equal(t, []int{5}, Slice(items, Page{Skip: 4, Limit: 10}))
	assert.Equal(t, []int{}, Slice(items, Page{Skip: 9, Limit: 10}))
}
