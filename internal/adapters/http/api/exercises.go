// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/gmrcWP/exercise-tracker/internal/app"
	"github.com/gmrcWP/exercise-tracker/pkg/metrics"
)

// ExerciseDependencies defines the interface for exercise creation.
type ExerciseDependencies interface {
	AddExercise(ctx context.Context, userID, description, duration, date string) (ExercisePayload, error)
}

// ExercisesHandler handles exercise creation requests.
type ExercisesHandler struct {
	deps ExerciseDependencies
}

// NewExercisesHandler creates a new exercises handler.
func NewExercisesHandler(deps ExerciseDependencies) *ExercisesHandler {
	return &ExercisesHandler{deps: deps}
}

// HandlePostExercise handles POST /api/users/{id}/exercises requests.
// An unknown user id is reported as a soft error payload, not a 404.
func (h *ExercisesHandler) HandlePostExercise(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	description := r.FormValue("description")
	duration := r.FormValue("duration")
	date := r.FormValue("date")

	ex, err := h.deps.AddExercise(r.Context(), userID, description, duration, date)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			writeSoftError(w, msgUserNotFound)
		case errors.Is(err, service.ErrValidation):
			metrics.RecordValidationFailure("exercises")
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, msgFailedCreateExercise)
		}
		return
	}
	writeJSON(w, http.StatusOK, ex)
}
