// Package auth provides concrete implementations for authentication-related
// domain services.
package auth

import (
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"singularity/config"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface
// using bcrypt. The strength policy is a configuration table, not logic.
type bcryptHasher struct {
	cost   int
	policy config.PasswordPolicyConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost >= bcrypt.MinCost && cfg.Auth.BcryptCost <= bcrypt.MaxCost {
		cost = cfg.Auth.BcryptCost
	}

	policy := config.PasswordPolicyConfig{}
	if cfg.PasswordPolicy != nil {
		policy = *cfg.PasswordPolicy
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
// bcrypt's comparison is constant-time-equivalent; it does not short-circuit
// in a way that leaks content via timing.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	return err == nil
}

// ValidateStrength enforces the configured minimum password policy. Each
// failure returns the specific unmet requirement so callers can surface
// actionable feedback.
func (h *bcryptHasher) ValidateStrength(password string) error {
	if len(password) < h.policy.MinLength {
		return domainerrors.ErrValidationFailed.WithDetails(
			fmt.Sprintf("password must be at least %d characters long", h.policy.MinLength))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if h.policy.RequireUpper && !hasUpper {
		return domainerrors.ErrValidationFailed.WithDetails("password must contain an uppercase letter")
	}
	if h.policy.RequireLower && !hasLower {
		return domainerrors.ErrValidationFailed.WithDetails("password must contain a lowercase letter")
	}
	if h.policy.RequireDigit && !hasDigit {
		return domainerrors.ErrValidationFailed.WithDetails("password must contain a digit")
	}
	if h.policy.RequireSpecial && !hasSpecial {
		return domainerrors.ErrValidationFailed.WithDetails("password must contain a special character")
	}

	return nil
}
