// Package common defines shared constants and sentinel errors used across
// the server, its transports and the admin CLI. Callers should use errors.Is
// to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Authentication and authorization outcomes.
	ErrUnauthenticated = errors.New("could not validate credentials")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidToken    = errors.New("invalid token")
	ErrRateLimited     = errors.New("too many requests")

	// Superuser lifecycle.
	ErrBootstrapClosed = fmt.Errorf("superuser already exists: %w", ErrForbidden)
	ErrLastSuperuser   = fmt.Errorf("cannot remove the last superuser: %w", ErrForbidden)
)
