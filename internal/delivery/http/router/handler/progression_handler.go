package handler

import (
	"log/slog"
	"net/http"

	"singularity/internal/delivery/http/middleware"
	"singularity/internal/delivery/http/response"
	"singularity/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProgressionHandler holds dependencies for progression-related handlers.
type ProgressionHandler struct {
	uc     usecase.ProgressionUsecase
	logger *slog.Logger
}

// NewProgressionHandler is the constructor for ProgressionHandler, injected by Fx.
func NewProgressionHandler(uc usecase.ProgressionUsecase, logger *slog.Logger) *ProgressionHandler {
	return &ProgressionHandler{
		uc:     uc,
		logger: logger,
	}
}

type progressRequest struct {
	ExperienceGained int            `json:"experienceGained" validate:"min=0"`
	AttributeDeltas  map[string]int `json:"attributeDeltas"`
}

type exerciseRequest struct {
	Exercise        string `json:"exercise" validate:"required"`
	Sets            int    `json:"sets" validate:"min=0"`
	Reps            int    `json:"reps" validate:"min=0"`
	DurationMinutes int    `json:"durationMinutes" validate:"min=0"`
}

type progressionView struct {
	Level      int            `json:"level"`
	Experience int            `json:"experience"`
	Attributes map[string]int `json:"attributes"`
}

// ApplyProgress applies an experience/attribute delta to the authenticated
// account.
func (h *ProgressionHandler) ApplyProgress(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
	}

	var req progressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid progression input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.ApplyProgression(c.Request().Context(), &usecase.ProgressionInput{
		AccountID:        account.ID,
		ExperienceGained: req.ExperienceGained,
		AttributeDeltas:  req.AttributeDeltas,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, progressionView{
		Level:      output.Level,
		Experience: output.Experience,
		Attributes: output.Attributes,
	}, "Progression applied successfully")
}

// CompleteExercise rewards the authenticated account for a logged exercise.
func (h *ProgressionHandler) CompleteExercise(c echo.Context) error {
	account := middleware.CurrentAccount(c)
	if account == nil {
		return response.Unauthorized(c, "UNAUTHORIZED", "invalid or expired token")
	}

	var req exerciseRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid exercise input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CompleteExercise(c.Request().Context(), &usecase.ExerciseInput{
		AccountID:       account.ID,
		Exercise:        req.Exercise,
		Sets:            req.Sets,
		Reps:            req.Reps,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, progressionView{
		Level:      output.Level,
		Experience: output.Experience,
		Attributes: output.Attributes,
	}, "Exercise completed successfully")
}
