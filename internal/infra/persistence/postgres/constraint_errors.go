package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for PostgreSQL error checking

func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "duplicate key") ||
		strings.Contains(errMsg, "unique constraint") ||
		strings.Contains(errMsg, "23505") // PostgreSQL unique_violation error code
}

// violatedColumn picks out which unique column a constraint violation names.
// Constraint names follow the idx_accounts_<column> / accounts_<column>_key
// conventions, so a substring match on the column is sufficient.
func violatedColumn(err error) string {
	errMsg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errMsg, "email"):
		return "email"
	case strings.Contains(errMsg, "username"):
		return "username"
	default:
		return ""
	}
}
