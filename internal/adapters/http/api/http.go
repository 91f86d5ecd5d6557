// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	service "github.com/gmrcWP/exercise-tracker/internal/app"
)

// Response shapes mirror the service results; aliases keep the handler layer
// free of its own envelope copies.
type (
	UserPayload     = service.UserResult
	ExercisePayload = service.ExerciseResult
	LogPayload      = service.LogResult
)

// Error payload messages. The bodies are part of the public contract and the
// odd capitalization is load-bearing.
const (
	msgUserNotFound         = "User not found"
	msgCouldNotFindUser     = "Could not find user"
	msgFailedCreateUser     = "Failed to create user"
	msgFailedRetrieveUsers  = "Failed to retrieve users"
	msgFailedCreateExercise = "Failed to create exercise"
	msgFailedSearchLogs     = "Failed to search logs"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	CreateUser(ctx context.Context, username string) (UserPayload, error)
	ListUsers(ctx context.Context) ([]UserPayload, error)
	AddExercise(ctx context.Context, userID, description, duration, date string) (ExercisePayload, error)
	Logs(ctx context.Context, userID, from, to, limit string) (LogPayload, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	usersHandler     *UsersHandler
	exercisesHandler *ExercisesHandler
	logsHandler      *LogsHandler
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		usersHandler:     NewUsersHandler(deps),
		exercisesHandler: NewExercisesHandler(deps),
		logsHandler:      NewLogsHandler(deps),
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/users", MetricsMiddleware(s.usersHandler.HandleUsers, "users"))
	mux.HandleFunc("/api/users/", MetricsMiddleware(s.handleUserSubresource, "user_subresource"))
}

// handleUserSubresource dispatches /api/users/{id}/exercises and
// /api/users/{id}/logs by hand; the id segment is opaque.
func (s *Server) handleUserSubresource(w http.ResponseWriter, r *http.Request) {
	id, rest, ok := splitUserPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch rest {
	case "exercises":
		s.exercisesHandler.HandlePostExercise(w, r, id)
	case "logs":
		s.logsHandler.HandleGetLogs(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

// splitUserPath extracts the user id and trailing segment from
// /api/users/{id}/{rest}.
func splitUserPath(path string) (id, rest string, ok bool) {
	const prefix = "/api/users/"
	if len(path) <= len(prefix) {
		return "", "", false
	}
	tail := path[len(prefix):]
	for i := 0; i < len(tail); i++ {
		if tail[i] == '/' {
			id, rest = tail[:i], tail[i+1:]
			return id, rest, id != "" && rest != ""
		}
	}
	return "", "", false
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports a failure with an explicit status code.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeSoftError reports a failure as a 200 JSON payload. Parts of the public
// contract predate proper status codes and callers match on the body.
func writeSoftError(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, errorResponse{Error: msg})
}
