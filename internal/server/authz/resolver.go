// Package authz turns bearer tokens into users and decides whether a user
// may act on a resource.
package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/models"
)

type TokenValidator interface {
	Validate(token string) (string, error)
}

type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Resolver maps a bearer token to the live account it names. Deleting an
// account makes every outstanding token for it unusable here, even before
// the token expires.
type Resolver struct {
	tokens TokenValidator
	users  UserLookup
}

func NewResolver(tokens TokenValidator, users UserLookup) *Resolver {
	return &Resolver{tokens: tokens, users: users}
}

// Resolve fails with common.ErrUnauthenticated for a bad token or a missing
// account, and with common.ErrorInternal when the store cannot answer.
func (r *Resolver) Resolve(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}

	subject, err := r.tokens.Validate(token)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}

	user, err := r.users.GetByUsername(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: load user: %w", common.ErrorInternal, err)
	}

	return user, nil
}

type ctxKey struct{}

// WithUser stores the resolved user in ctx.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

// UserFrom returns the user stored by WithUser, or nil.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(ctxKey{}).(*models.User)
	return u
}
