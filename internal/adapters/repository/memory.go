package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gmrcWP/exercise-tracker/internal/domain/model"
)

// MemoryStore implements Store with in-process maps. It backs local
// development (store: memory) and tests. Semantics mirror the Mongo store:
// insertion order, inclusive date bounds, limit applied after filtering.
type MemoryStore struct {
	mu        sync.RWMutex
	users     []model.User
	usersByID map[string]model.User
	exercises []model.Exercise
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		usersByID: make(map[string]model.User),
	}
}

func newID() string {
	// Compact hex-ish form keeps ids opaque and URL-safe.
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// InsertUser persists a new user and returns it with a generated id.
func (s *MemoryStore) InsertUser(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := model.User{ID: newID(), Username: username}
	s.users = append(s.users, u)
	s.usersByID[u.ID] = u
	return u, nil
}

// ListUsers returns all users in insertion order.
func (s *MemoryStore) ListUsers(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// FindUser returns the user with the given id, or ErrNotFound.
func (s *MemoryStore) FindUser(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.usersByID[id]
	if !ok {
		return model.User{}, ErrNotFound
	}
	return u, nil
}

// InsertExercise persists a new exercise entry.
func (s *MemoryStore) InsertExercise(_ context.Context, ex model.Exercise) (model.Exercise, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex.ID = newID()
	ex.Date = model.Midnight(ex.Date)
	s.exercises = append(s.exercises, ex)
	return ex, nil
}

// FindExercises returns a user's exercises matching the filter.
func (s *MemoryStore) FindExercises(_ context.Context, userID string, filter model.LogFilter) ([]model.Exercise, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Exercise, 0)
	for _, ex := range s.exercises {
		if ex.UserID != userID {
			continue
		}
		if !filter.Matches(ex.Date) {
			continue
		}
		out = append(out, ex)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// CountUsers reports the number of stored users.
func (s *MemoryStore) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.users)), nil
}

// CountExercises reports the number of stored exercises.
func (s *MemoryStore) CountExercises(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.exercises)), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close(_ context.Context) error {
	return nil
}
