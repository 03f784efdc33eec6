package usecase

import (
	"context"

	"github.com/google/uuid"
)

// ProgressionInput carries an externally computed experience/attribute delta
// for one account.
type ProgressionInput struct {
	AccountID        uuid.UUID
	ExperienceGained int
	AttributeDeltas  map[string]int
}

// ExerciseInput describes a completed exercise whose reward is computed from
// the configured catalog.
type ExerciseInput struct {
	AccountID       uuid.UUID
	Exercise        string
	Sets            int
	Reps            int
	DurationMinutes int
}

// ProgressionOutput is the account's progression state after the update.
type ProgressionOutput struct {
	Level      int
	Experience int
	Attributes map[string]int
}

// ProgressionUsecase applies experience and attribute gains to accounts.
type ProgressionUsecase interface {
	// ApplyProgression applies a precomputed delta to one account.
	ApplyProgression(ctx context.Context, input *ProgressionInput) (*ProgressionOutput, error)

	// CompleteExercise converts a logged exercise into a delta via the
	// catalog, then applies it.
	CompleteExercise(ctx context.Context, input *ExerciseInput) (*ProgressionOutput, error)
}
