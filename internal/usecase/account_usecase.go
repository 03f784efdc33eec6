// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"singularity/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
// ClientKey identifies the request origin for throttling.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FullName  string
	Class     string
	ClientKey string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email     string
	Password  string
	ClientKey string
}

// RefreshInput carries the refresh token presented to mint a new access token.
type RefreshInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// TokenPairOutput returns the issued tokens plus the account after a
// successful registration or login.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	Account      *entity.Account
}

// RefreshOutput returns the single new access token minted from a refresh
// token. The refresh token itself is deliberately not rotated.
type RefreshOutput struct {
	AccessToken string
}

// AccountUsecase defines the interface for authentication-related business
// operations. This is the contract the delivery layer depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*TokenPairOutput, error)
	Login(ctx context.Context, input *LoginInput) (*TokenPairOutput, error)
	Refresh(ctx context.Context, input *RefreshInput) (*RefreshOutput, error)

	// Authenticate resolves a bearer access token to the account it
	// identifies, or fails with the single undifferentiated unauthorized error.
	Authenticate(ctx context.Context, bearerToken string) (*entity.Account, error)
}
