package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes access tokens from refresh tokens. Verification
// requires the kind to match; a refresh token can never authenticate a
// request and an access token can never mint new tokens.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims defines the custom claims carried by issued tokens.
type Claims struct {
	Kind TokenKind `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying signed,
// expiring bearer tokens. Tokens are self-contained; there is no server-side
// revocation list, so expiry is the only termination mechanism.
type TokenService interface {
	// IssueAccess creates a short-lived access token for the given identity.
	IssueAccess(identity string) (string, error)

	// IssueRefresh creates a long-lived refresh token for the given identity.
	IssueRefresh(identity string) (string, error)

	// GenerateTokens issues an access/refresh pair in one call.
	GenerateTokens(identity string) (accessToken string, refreshToken string, err error)

	// Verify checks signature, expiry, and kind. Any failure collapses to a
	// single undifferentiated unauthorized error.
	Verify(tokenString string, kind TokenKind) (*Claims, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
