// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"singularity/config"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface
// using HS256 JWTs. Access and refresh tokens are signed with separate
// secrets so one kind can never masquerade as the other even if the kind
// claim were forged.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
		now:           time.Now,
	}, nil
}

// IssueAccess creates a short-lived access token for the given identity.
func (s *jwtService) IssueAccess(identity string) (string, error) {
	return s.issue(identity, service.TokenKindAccess, s.accessTTL, s.accessSecret)
}

// IssueRefresh creates a long-lived refresh token for the given identity.
func (s *jwtService) IssueRefresh(identity string) (string, error) {
	return s.issue(identity, service.TokenKindRefresh, s.refreshTTL, s.refreshSecret)
}

// GenerateTokens creates a new access/refresh token pair for one identity.
func (s *jwtService) GenerateTokens(identity string) (string, string, error) {
	accessToken, err := s.IssueAccess(identity)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.IssueRefresh(identity)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// Verify checks signature integrity, expiry, and token kind. Every failure
// mode collapses to ErrUnauthorized: the caller cannot distinguish a bad
// signature from an expired token without leaking information useful for
// forgery.
func (s *jwtService) Verify(tokenString string, kind service.TokenKind) (*service.Claims, error) {
	secret := s.accessSecret
	if kind == service.TokenKindRefresh {
		secret = s.refreshSecret
	}

	claims := &service.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil || !token.Valid || claims.Kind != kind || claims.Subject == "" {
		return nil, domainerrors.ErrUnauthorized
	}

	return claims, nil
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// issue creates a signed token with subject, kind, issued-at, and expiry.
func (s *jwtService) issue(identity string, kind service.TokenKind, ttl time.Duration, secret string) (string, error) {
	issuedAt := s.now()
	claims := &service.Claims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(secret))
}
