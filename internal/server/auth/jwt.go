// Package auth implements credential primitives: bcrypt password hashing and
// HS256 access tokens.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// TokenConfig is the immutable configuration of a TokenService.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// TokenService issues and validates signed, expiring access tokens whose
// subject is the account username. Tokens are stateless; nothing is stored.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService copies cfg so later changes to the caller's slice do not
// affect signing.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	if cfg.TTL <= 0 {
		return nil, errors.New("token ttl must be positive")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)

	return &TokenService{secret: secret, ttl: cfg.TTL, now: now}, nil
}

// TTL returns the default token lifetime.
func (s *TokenService) TTL() time.Duration { return s.ttl }

// Issue signs a token for subject valid for ttl; ttl <= 0 uses the default.
func (s *TokenService) Issue(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}
	if ttl <= 0 {
		ttl = s.ttl
	}
	now := s.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	return token.SignedString(s.secret)
}

// IssueDefault signs a token for subject with the default lifetime.
func (s *TokenService) IssueDefault(subject string) (string, error) {
	return s.Issue(subject, s.ttl)
}

// Validate verifies the signature and expiry of token and returns its
// subject. Every failure, whatever the cause, is common.ErrInvalidToken.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
