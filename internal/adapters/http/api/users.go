// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/gmrcWP/exercise-tracker/internal/app"
	"github.com/gmrcWP/exercise-tracker/pkg/metrics"
)

// UserDependencies defines the interface for user operations.
type UserDependencies interface {
	CreateUser(ctx context.Context, username string) (UserPayload, error)
	ListUsers(ctx context.Context) ([]UserPayload, error)
}

// UsersHandler handles the /api/users collection.
type UsersHandler struct {
	deps UserDependencies
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(deps UserDependencies) *UsersHandler {
	return &UsersHandler{deps: deps}
}

// HandleUsers handles GET and POST /api/users requests.
func (h *UsersHandler) HandleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *UsersHandler) handleList(w http.ResponseWriter, r *http.Request) {
	users, err := h.deps.ListUsers(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, msgFailedRetrieveUsers)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")

	user, err := h.deps.CreateUser(r.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			metrics.RecordValidationFailure("users")
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, msgFailedCreateUser)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
