// Package models defines the server-side domain entities, their input shapes
// and the patch value objects applied by partial updates.
package models

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/dmitrijs2005/poolkeeper/internal/common"
)

// User is an account. HashedPassword never leaves the server.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	HashedPassword string    `json:"-"`
	IsSuperuser    bool      `json:"is_superuser"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewUser carries registration and bootstrap input.
type NewUser struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks the fields every account needs.
func (n NewUser) Validate() error {
	if err := validateEmail(n.Email); err != nil {
		return err
	}
	if strings.TrimSpace(n.Username) == "" {
		return fmt.Errorf("%w: username is required", common.ErrorValidation)
	}
	if n.Password == "" {
		return fmt.Errorf("%w: password is required", common.ErrorValidation)
	}
	return nil
}

// UserPatch is a partial account update. Password is plaintext and is hashed
// by the service before the patch reaches storage.
type UserPatch struct {
	Email       *string `json:"email,omitempty"`
	Username    *string `json:"username,omitempty"`
	Password    *string `json:"password,omitempty"`
	IsSuperuser *bool   `json:"is_superuser,omitempty"`
}

// Validate checks the fields that are set.
func (p UserPatch) Validate() error {
	if p.Email != nil {
		if err := validateEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Username != nil && strings.TrimSpace(*p.Username) == "" {
		return fmt.Errorf("%w: username must not be empty", common.ErrorValidation)
	}
	if p.Password != nil && *p.Password == "" {
		return fmt.Errorf("%w: password must not be empty", common.ErrorValidation)
	}
	return nil
}

// Demotes reports whether applying p takes superuser rights away from u.
func (p UserPatch) Demotes(u *User) bool {
	return u.IsSuperuser && p.IsSuperuser != nil && !*p.IsSuperuser
}

// Apply merges the set fields of p into u. Password is left to the caller.
func (u *User) Apply(p UserPatch) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.IsSuperuser != nil {
		u.IsSuperuser = *p.IsSuperuser
	}
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("%w: invalid email %q", common.ErrorValidation, email)
	}
	return nil
}
