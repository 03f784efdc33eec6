package impl

import (
	"context"
	"log/slog"
	"strings"

	"singularity/config"
	deliverycontext "singularity/internal/delivery/context"
	domainerrors "singularity/internal/domain/errors"
	"singularity/internal/domain/progression"
	"singularity/internal/domain/repository"
	"singularity/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// maxProgressRetries bounds the optimistic-concurrency retry loop. Each
// retry refetches the account, recomputes the delta against the fresh state,
// and attempts the conditional write again.
const maxProgressRetries = 3

// progressionService implements the ProgressionUsecase interface.
type progressionService struct {
	accountRepo repository.AccountRepository
	game        *config.GameConfig
	logger      *slog.Logger
}

// ProgressionServiceParams holds dependencies for progressionService,
// injected by Fx.
type ProgressionServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	Config      *config.Config
	Logger      *slog.Logger
}

// NewProgressionService is the constructor for progressionService.
func NewProgressionService(params ProgressionServiceParams) usecase.ProgressionUsecase {
	return &progressionService{
		accountRepo: params.AccountRepo,
		game:        params.Config.Game,
		logger:      params.Logger,
	}
}

func (srv *progressionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ApplyProgression applies an experience/attribute delta to one account.
// The read-compute-write cycle is conditioned on the account's version; on a
// lost race the cycle restarts from a fresh read so no gain is ever applied
// to stale state or applied twice.
func (srv *progressionService) ApplyProgression(ctx context.Context, input *usecase.ProgressionInput) (*usecase.ProgressionOutput, error) {
	if input.ExperienceGained < 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("experience gained must not be negative")
	}
	for name, delta := range input.AttributeDeltas {
		if delta < 0 {
			return nil, domainerrors.ErrValidationFailed.WithDetails("attribute delta for " + name + " must not be negative")
		}
	}

	for attempt := 0; attempt < maxProgressRetries; attempt++ {
		account, err := srv.accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return nil, domainerrors.ErrAccountNotFound
			}
			srv.log(ctx).Error("Failed to load account for progression", slog.Any("error", err))

			return nil, mapStoreError(err)
		}

		next := progression.Apply(progression.State{
			Level:      account.Level,
			Experience: account.Experience,
			Attributes: account.Attributes,
		}, input.ExperienceGained, input.AttributeDeltas)

		applied, err := srv.accountRepo.ApplyProgression(ctx, account.ID, account.Version, repository.ProgressionUpdate{
			Level:      next.Level,
			Experience: next.Experience,
			Attributes: next.Attributes,
		})
		if err != nil {
			srv.log(ctx).Error("Failed to persist progression", slog.Any("error", err))

			return nil, mapStoreError(err)
		}
		if !applied {
			srv.log(ctx).Debug("Progression write lost a version race, retrying",
				slog.Any("accountID", account.ID),
				slog.Int("attempt", attempt+1))

			continue
		}

		if next.Level > account.Level {
			srv.log(ctx).Info("Account leveled up",
				slog.Any("accountID", account.ID),
				slog.Int("from", account.Level),
				slog.Int("to", next.Level))
		}

		return &usecase.ProgressionOutput{
			Level:      next.Level,
			Experience: next.Experience,
			Attributes: next.Attributes,
		}, nil
	}

	srv.log(ctx).Warn("Progression retries exhausted", slog.Any("accountID", input.AccountID))

	return nil, domainerrors.ErrProgressConflict
}

// CompleteExercise converts a logged exercise into an experience and
// attribute delta via the configured catalog, then applies it.
func (srv *progressionService) CompleteExercise(ctx context.Context, input *usecase.ExerciseInput) (*usecase.ProgressionOutput, error) {
	entry, ok := srv.game.Exercises[strings.ToLower(strings.TrimSpace(input.Exercise))]
	if !ok {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown exercise: " + input.Exercise)
	}

	gained := exerciseReward(entry, input)

	srv.log(ctx).Debug("Exercise completed",
		slog.Any("accountID", input.AccountID),
		slog.String("exercise", input.Exercise),
		slog.Int("experienceGained", gained))

	return srv.ApplyProgression(ctx, &usecase.ProgressionInput{
		AccountID:        input.AccountID,
		ExperienceGained: gained,
		AttributeDeltas:  map[string]int{entry.Attribute: 1},
	})
}

// exerciseReward computes the experience granted by one completed exercise.
// Duration-based activities scale by minutes; rep-based ones scale by
// sets times reps, each defaulting to one when unset.
func exerciseReward(entry config.ExerciseConfig, input *usecase.ExerciseInput) int {
	if input.DurationMinutes > 0 {
		return entry.BaseExp * input.DurationMinutes
	}

	sets := input.Sets
	if sets <= 0 {
		sets = 1
	}
	reps := input.Reps
	if reps <= 0 {
		reps = 1
	}

	return entry.BaseExp * sets * reps
}
