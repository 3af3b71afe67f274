package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/logging"
	"github.com/dmitrijs2005/poolkeeper/internal/server/auth"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
	"github.com/dmitrijs2005/poolkeeper/internal/server/ratelimit"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/memory"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type env struct {
	m      *memory.Manager
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	users  *UserService
	admin  *AdminService
}

func newEnv(t *testing.T, limiter ratelimit.Limiter) *env {
	t.Helper()
	m := memory.NewManager()
	h := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: []byte("k"), TTL: time.Hour})
	require.NoError(t, err)
	return &env{
		m:      m,
		hasher: h,
		tokens: tokens,
		users:  NewUserService(m, h, tokens, limiter, logging.Nop{}),
		admin:  NewAdminService(m, h, logging.Nop{}),
	}
}

func (e *env) register(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.users.Register(context.Background(), models.NewUser{
		Email: name + "@example.com", Username: name, Password: name + "-pw",
	})
	require.NoError(t, err)
	return u
}

func (e *env) bootstrap(t *testing.T, name string) *models.User {
	t.Helper()
	u, err := e.admin.CreateInitialSuperuser(context.Background(), models.NewUser{
		Email: name + "@example.com", Username: name, Password: name + "-pw",
	})
	require.NoError(t, err)
	return u
}

func ptr[T any](v T) *T { return &v }
