// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	repository "github.com/gmrcWP/exercise-tracker/internal/adapters/repository"
	"github.com/gmrcWP/exercise-tracker/internal/domain/model"
	"github.com/gmrcWP/exercise-tracker/pkg/logger"
	"github.com/gmrcWP/exercise-tracker/pkg/metrics"
)

// defaultLogLimit caps log entries when the caller supplies no usable limit.
const defaultLogLimit = 10

// UserResult is the response shape for user creation and listing.
type UserResult struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// ExerciseResult is the response shape for exercise creation.
//
// ID carries the owner's user id, not the entry's own generated id. The
// public contract has always worked this way and callers depend on it; the
// entry's real id stays internal.
type ExerciseResult struct {
	Username    string `json:"username"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
	ID          string `json:"id"`
}

// LogEntry is a single reshaped exercise inside a log response.
type LogEntry struct {
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Date        string `json:"date"`
}

// LogResult is the response shape for log queries. Count is the number of
// entries actually returned after the limit, not the total matching.
type LogResult struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"id"`
	Log      []LogEntry `json:"log"`
}

// Service implements the API dependencies for the exercise tracker.
type Service struct {
	store     repository.Store
	storeKind string
	logLimit  int
	logger    logger.Logger
	now       func() time.Time
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend. Required for a working service.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithStoreKind records the backend name reported by GetStats.
func WithStoreKind(kind string) Option {
	return func(s *Service) {
		if kind != "" {
			s.storeKind = kind
		}
	}
}

// WithDefaultLogLimit sets the cap used when a log query supplies no limit.
func WithDefaultLogLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.logLimit = limit
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source. Used by tests that pin "today".
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:     repository.NewMemoryStore(),
		storeKind: "memory",
		logLimit:  defaultLogLimit,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateUser registers a new user. Duplicate usernames are allowed.
func (s *Service) CreateUser(ctx context.Context, username string) (UserResult, error) {
	if strings.TrimSpace(username) == "" {
		return UserResult{}, ErrEmptyUsername
	}

	user, err := s.store.InsertUser(ctx, username)
	if err != nil {
		s.logError(ctx, "user insert failed", err)
		metrics.RecordStoreError("insert_user")
		return UserResult{}, fmt.Errorf("create user: %w", err)
	}

	metrics.RecordUserCreated()
	return UserResult{Username: user.Username, ID: user.ID}, nil
}

// ListUsers returns all registered users in store order.
func (s *Service) ListUsers(ctx context.Context) ([]UserResult, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		s.logError(ctx, "user list failed", err)
		metrics.RecordStoreError("list_users")
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]UserResult, 0, len(users))
	for _, u := range users {
		out = append(out, UserResult{Username: u.Username, ID: u.ID})
	}
	return out, nil
}

// AddExercise records an exercise entry against an existing user.
// Duration arrives as form text and is coerced to a non-negative integer.
// A missing or unparseable date resolves to today.
func (s *Service) AddExercise(ctx context.Context, userID, description, durationText, dateText string) (ExerciseResult, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ExerciseResult{}, ErrUserNotFound
		}
		s.logError(ctx, "user lookup failed", err)
		metrics.RecordStoreError("find_user")
		return ExerciseResult{}, fmt.Errorf("add exercise: %w", err)
	}

	if strings.TrimSpace(description) == "" {
		return ExerciseResult{}, ErrEmptyDescription
	}
	duration, err := strconv.Atoi(strings.TrimSpace(durationText))
	if err != nil || duration < 0 {
		return ExerciseResult{}, ErrBadDuration
	}

	date := s.resolveDate(ctx, dateText)

	ex, err := s.store.InsertExercise(ctx, model.Exercise{
		UserID:      user.ID,
		Username:    user.Username,
		Description: description,
		Duration:    duration,
		Date:        date,
	})
	if err != nil {
		s.logError(ctx, "exercise insert failed", err)
		metrics.RecordStoreError("insert_exercise")
		return ExerciseResult{}, fmt.Errorf("add exercise: %w", err)
	}

	metrics.RecordExerciseRecorded()
	return ExerciseResult{
		Username:    user.Username,
		Description: ex.Description,
		Duration:    ex.Duration,
		Date:        model.FormatDate(ex.Date),
		ID:          ex.UserID,
	}, nil
}

// Logs returns a user's exercise log with optional inclusive date bounds and
// a result cap. An unusable limit falls back to the configured default.
func (s *Service) Logs(ctx context.Context, userID, fromText, toText, limitText string) (LogResult, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LogResult{}, ErrUserNotFound
		}
		s.logError(ctx, "user lookup failed", err)
		metrics.RecordStoreError("find_user")
		return LogResult{}, fmt.Errorf("logs: %w", err)
	}

	filter := model.LogFilter{Limit: s.logLimit}
	if d, err := model.ParseDate(fromText); fromText != "" && err == nil {
		filter.From = &d
	}
	if d, err := model.ParseDate(toText); toText != "" && err == nil {
		filter.To = &d
	}
	if n, err := strconv.Atoi(strings.TrimSpace(limitText)); err == nil && n > 0 {
		filter.Limit = n
	}

	exercises, err := s.store.FindExercises(ctx, user.ID, filter)
	if err != nil {
		s.logError(ctx, "exercise query failed", err)
		metrics.RecordStoreError("find_exercises")
		return LogResult{}, fmt.Errorf("logs: %w", err)
	}

	entries := make([]LogEntry, 0, len(exercises))
	for _, ex := range exercises {
		entries = append(entries, LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        model.FormatDate(ex.Date),
		})
	}

	metrics.RecordLogQuery()
	return LogResult{
		Username: user.Username,
		Count:    len(entries),
		ID:       user.ID,
		Log:      entries,
	}, nil
}

// GetStats returns a snapshot of service-level counters for the stats endpoint.
func (s *Service) GetStats(ctx context.Context) map[string]interface{} {
	stats := map[string]interface{}{
		"store":           s.storeKind,
		"defaultLogLimit": s.logLimit,
	}
	if n, err := s.store.CountUsers(ctx); err == nil {
		stats["users"] = n
	}
	if n, err := s.store.CountExercises(ctx); err == nil {
		stats["exercises"] = n
	}
	return stats
}

// resolveDate parses a supplied calendar date, falling back to today when the
// input is absent or unparseable. "Today" is the UTC calendar day: the stores
// truncate dates in UTC, so near local midnight outside UTC a dateless entry
// lands on the UTC day, not the server's local one.
func (s *Service) resolveDate(ctx context.Context, dateText string) time.Time {
	if strings.TrimSpace(dateText) == "" {
		return s.now()
	}
	d, err := model.ParseDate(dateText)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug(ctx, "unparseable date; using today", logger.String("date", dateText))
		}
		return s.now()
	}
	return d
}

func (s *Service) logError(ctx context.Context, msg string, err error) {
	if s.logger != nil {
		s.logger.Error(ctx, msg, logger.Error(err))
	}
}
