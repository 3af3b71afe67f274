package common

// AuthorizationHeaderName is the HTTP header and gRPC metadata key carrying
// the bearer token on inbound requests.
const AuthorizationHeaderName = "authorization"

// TokenType is the token_type reported alongside every issued access token.
const TokenType = "bearer"

// Pagination defaults for list operations.
const (
	DefaultListLimit = 100
	MaxListLimit     = 1000
)
