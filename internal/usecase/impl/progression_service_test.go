package impl

import (
	"context"
	"testing"

	"singularity/internal/domain/entity"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/domain/repository"
	mockRepo "singularity/internal/mocks/repository"
	"singularity/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// progressionServiceFixtures holds all test dependencies for progression
// service tests.
type progressionServiceFixtures struct {
	service     usecase.ProgressionUsecase
	accountRepo *mockRepo.MockAccountRepository
}

func createTestProgressionService(t *testing.T) progressionServiceFixtures {
	accountRepo := mockRepo.NewMockAccountRepository(t)

	service := NewProgressionService(ProgressionServiceParams{
		AccountRepo: accountRepo,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	return progressionServiceFixtures{
		service:     service,
		accountRepo: accountRepo,
	}
}

func TestProgressionService_ApplyProgression_Success(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()
	account := testAccount()
	account.Level = 1
	account.Experience = 90
	account.Version = 3

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(account, nil)

	fx.accountRepo.EXPECT().
		ApplyProgression(ctx, account.ID, int64(3), repository.ProgressionUpdate{
			Level:      2,
			Experience: 20,
			Attributes: map[string]int{
				entity.AttrStrength:     5,
				entity.AttrAgility:      2,
				entity.AttrVitality:     3,
				entity.AttrIntelligence: 2,
			},
		}).
		Return(true, nil)

	output, err := fx.service.ApplyProgression(ctx, &usecase.ProgressionInput{
		AccountID:        account.ID,
		ExperienceGained: 30,
		AttributeDeltas:  map[string]int{entity.AttrStrength: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Level)
	assert.Equal(t, 20, output.Experience)
	assert.Equal(t, 5, output.Attributes[entity.AttrStrength])
}

func TestProgressionService_ApplyProgression_RetriesOnVersionRace(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()
	account := testAccount()
	account.Version = 1

	refreshed := testAccount()
	refreshed.ID = account.ID
	refreshed.Experience = 50
	refreshed.Version = 2

	// First attempt loses the version race; the second, against the fresh
	// read, succeeds.
	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil).Once()
	fx.accountRepo.EXPECT().
		ApplyProgression(ctx, account.ID, int64(1), mock.AnythingOfType("repository.ProgressionUpdate")).
		Return(false, nil).
		Once()
	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(refreshed, nil).Once()
	fx.accountRepo.EXPECT().
		ApplyProgression(ctx, account.ID, int64(2), mock.AnythingOfType("repository.ProgressionUpdate")).
		Return(true, nil).
		Once()

	output, err := fx.service.ApplyProgression(ctx, &usecase.ProgressionInput{
		AccountID:        account.ID,
		ExperienceGained: 10,
	})

	require.NoError(t, err)
	// The delta was recomputed against the refreshed state, not the stale one.
	assert.Equal(t, 60, output.Experience)
}

func TestProgressionService_ApplyProgression_ConflictAfterRetriesExhausted(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()
	account := testAccount()

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil).Times(3)
	fx.accountRepo.EXPECT().
		ApplyProgression(ctx, account.ID, account.Version, mock.AnythingOfType("repository.ProgressionUpdate")).
		Return(false, nil).
		Times(3)

	output, err := fx.service.ApplyProgression(ctx, &usecase.ProgressionInput{
		AccountID:        account.ID,
		ExperienceGained: 10,
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrProgressConflict))
}

func TestProgressionService_ApplyProgression_AccountNotFound(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()
	account := testAccount()

	fx.accountRepo.EXPECT().
		FindByID(ctx, account.ID).
		Return(nil, repository.ErrAccountNotFound)

	output, err := fx.service.ApplyProgression(ctx, &usecase.ProgressionInput{
		AccountID:        account.ID,
		ExperienceGained: 10,
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrAccountNotFound))
}

func TestProgressionService_ApplyProgression_RejectsNegativeGain(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()

	output, err := fx.service.ApplyProgression(ctx, &usecase.ProgressionInput{
		AccountID:        testAccount().ID,
		ExperienceGained: -5,
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProgressionService_ApplyProgression_RejectsNegativeDelta(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()

	output, err := fx.service.ApplyProgression(ctx, &usecase.ProgressionInput{
		AccountID:       testAccount().ID,
		AttributeDeltas: map[string]int{entity.AttrStrength: -1},
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestProgressionService_CompleteExercise_RepBased(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()
	account := testAccount()
	account.Experience = 0

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.accountRepo.EXPECT().
		ApplyProgression(ctx, account.ID, account.Version, repository.ProgressionUpdate{
			// pushups: baseExp 2 * 3 sets * 10 reps = 60 exp, strength +1.
			Level:      1,
			Experience: 60,
			Attributes: map[string]int{
				entity.AttrStrength:     5,
				entity.AttrAgility:      2,
				entity.AttrVitality:     3,
				entity.AttrIntelligence: 2,
			},
		}).
		Return(true, nil)

	output, err := fx.service.CompleteExercise(ctx, &usecase.ExerciseInput{
		AccountID: account.ID,
		Exercise:  "pushups",
		Sets:      3,
		Reps:      10,
	})

	require.NoError(t, err)
	assert.Equal(t, 60, output.Experience)
	assert.Equal(t, 5, output.Attributes[entity.AttrStrength])
}

func TestProgressionService_CompleteExercise_DurationBased(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()
	account := testAccount()
	account.Experience = 0

	fx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.accountRepo.EXPECT().
		ApplyProgression(ctx, account.ID, account.Version, mock.AnythingOfType("repository.ProgressionUpdate")).
		Return(true, nil)

	// running: baseExp 4 * 30 minutes = 120 exp, enough for one level.
	output, err := fx.service.CompleteExercise(ctx, &usecase.ExerciseInput{
		AccountID:       account.ID,
		Exercise:        "running",
		DurationMinutes: 30,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.Level)
	assert.Equal(t, 20, output.Experience)
	assert.Equal(t, 4, output.Attributes[entity.AttrVitality])
}

func TestProgressionService_CompleteExercise_UnknownExercise(t *testing.T) {
	fx := createTestProgressionService(t)

	ctx := context.Background()

	output, err := fx.service.CompleteExercise(ctx, &usecase.ExerciseInput{
		AccountID: testAccount().ID,
		Exercise:  "underwater-basket-weaving",
	})

	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
