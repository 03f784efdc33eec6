// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"
	"time"

	"singularity/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific persistence errors. The application layer handles these
// without depending on database-specific error types.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateEmail is returned when an insert races an existing email.
	// Uniqueness is enforced by the store, not merely pre-checked.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicateUsername is returned when an insert races an existing username.
	ErrDuplicateUsername = errors.New("username already exists")
)

// ProgressionUpdate carries the replacement progression fields for a single
// account, applied atomically and conditionally on the expected version.
type ProgressionUpdate struct {
	Level      int
	Experience int
	Attributes map[string]int
}

// AccountRepository defines the narrow contract the core requires from the
// document store. Each operation is atomic at the single-account level.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its canonical (lower-case) email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByUsername retrieves a single account by its case-sensitive username.
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)

	// Create persists a new account, assigning its ID. Uniqueness violations
	// surface as ErrDuplicateEmail / ErrDuplicateUsername.
	Create(ctx context.Context, account *entity.Account) error

	// UpdateLastLogin stamps the account's last successful login.
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error

	// ApplyProgression conditionally replaces the progression fields of one
	// account. The write succeeds only when the stored version still equals
	// expectedVersion; it returns false (and no error) when the account is
	// gone or the version moved, which callers treat as a lost update.
	ApplyProgression(ctx context.Context, id uuid.UUID, expectedVersion int64, update ProgressionUpdate) (bool, error)
}
