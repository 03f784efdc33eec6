package postgres

import (
	"context"
	"time"

	"singularity/config"
	"singularity/internal/domain/entity"
	"singularity/internal/domain/repository"
	"singularity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements the repository.AccountRepository interface
// using GORM. Every call runs under a bounded timeout so a stalled store
// surfaces as a deadline error instead of pinning the handling goroutine.
type accountRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a repository.AccountRepository interface,
// adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB, cfg *config.Config) repository.AccountRepository {
	return &accountRepository{
		db:           db,
		queryTimeout: cfg.QueryTimeout,
	}
}

func (repo *accountRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, repo.queryTimeout)
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// FindByEmail retrieves a single account by its canonical email. The lookup
// canonicalizes again defensively so a mixed-case argument cannot miss.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("email = ?", entity.NormalizeEmail(email)).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return toAccountDomain(&accountM), nil
}

// FindByUsername retrieves a single account by its case-sensitive username.
func (repo *accountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).Where("username = ?", username).First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by username")
	}

	return toAccountDomain(&accountM), nil
}

// Create persists a new account. Uniqueness is race-checked by the store's
// constraints; a violation here is definitive even if a pre-check passed.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			if violatedColumn(err) == "username" {
				return repository.ErrDuplicateUsername
			}

			return repository.ErrDuplicateEmail
		}

		return errors.Wrap(err, "failed to create account")
	}

	// Propagate store-assigned fields back to the entity.
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.Version = accountM.Version

	return nil
}

// UpdateLastLogin stamps the account's last successful login.
func (repo *accountRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update last login")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// ApplyProgression atomically replaces the progression fields of one account,
// conditioned on the expected version. A false return means the account is
// gone or a concurrent writer advanced the version first.
func (repo *accountRepository) ApplyProgression(ctx context.Context, id uuid.UUID, expectedVersion int64, update repository.ProgressionUpdate) (bool, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ? AND version = ?", id, expectedVersion).
		UpdateColumns(map[string]any{
			"level":         update.Level,
			"experience":    update.Experience,
			"strength":      attrOrFloor(update.Attributes, entity.AttrStrength),
			"agility":       attrOrFloor(update.Attributes, entity.AttrAgility),
			"vitality":      attrOrFloor(update.Attributes, entity.AttrVitality),
			"intelligence":  attrOrFloor(update.Attributes, entity.AttrIntelligence),
			"version":       expectedVersion + 1,
			"last_activity": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, errors.Wrap(result.Error, "failed to apply progression")
	}

	return result.RowsAffected > 0, nil
}

func attrOrFloor(attributes map[string]int, name string) int {
	if value, ok := attributes[name]; ok && value >= 1 {
		return value
	}

	return 1
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toAccountDomain converts a GORM AccountModel to a domain Account entity.
func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Email:        data.Email,
		Username:     data.Username,
		FullName:     data.FullName,
		Class:        entity.ParseClass(data.Class),
		PasswordHash: data.PasswordHash,
		Level:        data.Level,
		Experience:   data.Experience,
		Attributes: map[string]int{
			entity.AttrStrength:     data.Strength,
			entity.AttrAgility:      data.Agility,
			entity.AttrVitality:     data.Vitality,
			entity.AttrIntelligence: data.Intelligence,
		},
		Energy:       data.Energy,
		MaxEnergy:    data.MaxEnergy,
		Version:      data.Version,
		CreatedAt:    data.CreatedAt,
		LastLogin:    data.LastLogin,
		LastActivity: data.LastActivity,
	}
}

// fromAccountDomain converts a domain Account entity to a GORM AccountModel.
func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Email:        entity.NormalizeEmail(data.Email),
		Username:     data.Username,
		FullName:     data.FullName,
		Class:        string(data.Class),
		PasswordHash: data.PasswordHash,
		Level:        data.Level,
		Experience:   data.Experience,
		Strength:     attrOrFloor(data.Attributes, entity.AttrStrength),
		Agility:      attrOrFloor(data.Attributes, entity.AttrAgility),
		Vitality:     attrOrFloor(data.Attributes, entity.AttrVitality),
		Intelligence: attrOrFloor(data.Attributes, entity.AttrIntelligence),
		Energy:       data.Energy,
		MaxEnergy:    data.MaxEnergy,
		Version:      data.Version,
		LastLogin:    data.LastLogin,
		LastActivity: data.LastActivity,
	}
}
