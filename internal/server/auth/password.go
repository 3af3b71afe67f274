package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies account passwords with bcrypt.
// The salt is generated per call and embedded in the hash string.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using cost, clamped to bcrypt's valid
// range.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash never
// matches.
func (h *PasswordHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
