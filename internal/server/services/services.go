// Package services contains server-side business logic. Every operation
// takes the acting user resolved by the transport; authorization happens
// here, before any data is read or written on the user's behalf.
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/dmitrijs2005/poolkeeper/internal/server/authz"
	"github.com/dmitrijs2005/poolkeeper/internal/server/repositories/repomanager"
)

// Token is the result of a successful login or refresh.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func newToken(access string) *Token {
	return &Token{AccessToken: access, TokenType: common.TokenType}
}

// Hasher hashes and checks passwords.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenIssuer signs access tokens for a username.
type TokenIssuer interface {
	IssueDefault(subject string) (string, error)
}

// ownership wires an authorizer to the manager's pool-bound stores.
func ownership(m repomanager.RepositoryManager) *authz.Authorizer {
	return authz.NewAuthorizer(authz.StoreOwners{Repos: m.Repos()}, authz.DefaultPolicy)
}

// internal hides store failures behind common.ErrorInternal while keeping
// the sentinels callers branch on.
func internal(op string, err error) error {
	for _, keep := range []error{
		common.ErrorNotFound,
		common.ErrorConflict,
		common.ErrorValidation,
		common.ErrForbidden,
		common.ErrUnauthenticated,
		common.ErrorInternal,
	} {
		if errors.Is(err, keep) {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return fmt.Errorf("%s: %w: %w", op, common.ErrorInternal, err)
}
