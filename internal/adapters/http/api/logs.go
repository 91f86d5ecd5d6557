// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/gmrcWP/exercise-tracker/internal/app"
)

// LogDependencies defines the interface for log queries.
type LogDependencies interface {
	Logs(ctx context.Context, userID, from, to, limit string) (LogPayload, error)
}

// LogsHandler handles exercise log requests.
type LogsHandler struct {
	deps LogDependencies
}

// NewLogsHandler creates a new logs handler.
func NewLogsHandler(deps LogDependencies) *LogsHandler {
	return &LogsHandler{deps: deps}
}

// HandleGetLogs handles GET /api/users/{id}/logs?from=&to=&limit= requests.
// Every failure on this route is a soft error payload; the route has never
// reported real status codes and callers match on the body.
func (h *LogsHandler) HandleGetLogs(w http.ResponseWriter, r *http.Request, userID string) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := r.URL.Query()
	logs, err := h.deps.Logs(r.Context(), userID, q.Get("from"), q.Get("to"), q.Get("limit"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeSoftError(w, msgCouldNotFindUser)
			return
		}
		writeSoftError(w, msgFailedSearchLogs)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
