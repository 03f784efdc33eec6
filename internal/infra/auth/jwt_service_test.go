package auth

import (
	"testing"
	"time"

	"singularity/config"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTokenConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := tokenService.GenerateTokens("hero@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, accessToken)
	assert.NotEmpty(t, refreshToken)

	accessClaims, err := tokenService.Verify(accessToken, service.TokenKindAccess)
	require.NoError(t, err)
	assert.Equal(t, "hero@example.com", accessClaims.Subject)
	assert.Equal(t, service.TokenKindAccess, accessClaims.Kind)

	refreshClaims, err := tokenService.Verify(refreshToken, service.TokenKindRefresh)
	require.NoError(t, err)
	assert.Equal(t, "hero@example.com", refreshClaims.Subject)
	assert.Equal(t, service.TokenKindRefresh, refreshClaims.Kind)
}

func TestJWTService_WrongKindRejected(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	accessToken, refreshToken, err := tokenService.GenerateTokens("hero@example.com")
	require.NoError(t, err)

	// A refresh token can never authenticate a request and vice versa.
	claims, err := tokenService.Verify(refreshToken, service.TokenKindAccess)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Nil(t, claims)

	claims, err = tokenService.Verify(accessToken, service.TokenKindRefresh)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Nil(t, claims)
}

func TestJWTService_MalformedAndTamperedTokens(t *testing.T) {
	tokenService, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	claims, err := tokenService.Verify("clearly-not-a-jwt-token", service.TokenKindAccess)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Nil(t, claims)

	accessToken, err := tokenService.IssueAccess("hero@example.com")
	require.NoError(t, err)

	tampered := accessToken[:len(accessToken)-2] + "xx"
	claims, err = tokenService.Verify(tampered, service.TokenKindAccess)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Nil(t, claims)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig())
	require.NoError(t, err)

	jwtSvc, ok := svc.(*jwtService)
	require.True(t, ok)

	issuedAt := time.Now()
	jwtSvc.now = func() time.Time { return issuedAt }

	accessToken, err := jwtSvc.IssueAccess("hero@example.com")
	require.NoError(t, err)

	// Valid just before expiry.
	jwtSvc.now = func() time.Time { return issuedAt.Add(15*time.Minute - time.Second) }
	_, err = jwtSvc.Verify(accessToken, service.TokenKindAccess)
	assert.NoError(t, err)

	// Invalid once now >= expiry.
	jwtSvc.now = func() time.Time { return issuedAt.Add(15*time.Minute + time.Second) }
	claims, err := jwtSvc.Verify(accessToken, service.TokenKindAccess)
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	assert.Nil(t, claims)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := testTokenConfig()
	cfg.SecretKey.Access = ""
	cfg.SecretKey.Refresh = ""

	tokenService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, tokenService)
}
