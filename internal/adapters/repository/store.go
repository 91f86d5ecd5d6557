// Package repository defines the document store interface and errors.
package repository

import (
	"context"

	"github.com/gmrcWP/exercise-tracker/internal/domain/model"
)

// Store provides durable access to users and their exercise entries.
// Implementations must preserve insertion order for list operations and
// apply the log filter's inclusive date bounds and limit server-side.
type Store interface {
	// InsertUser persists a new user and returns it with a generated id.
	InsertUser(ctx context.Context, username string) (model.User, error)

	// ListUsers returns all users in store order. An empty store yields an
	// empty slice, not an error.
	ListUsers(ctx context.Context) ([]model.User, error)

	// FindUser returns the user with the given id.
	// Returns ErrNotFound when the id is unknown or malformed.
	FindUser(ctx context.Context, id string) (model.User, error)

	// InsertExercise persists a new exercise entry and returns it with a
	// generated id. The caller is responsible for the owner existence check.
	InsertExercise(ctx context.Context, ex model.Exercise) (model.Exercise, error)

	// FindExercises returns a user's exercises matching the filter,
	// capped at the filter's limit.
	FindExercises(ctx context.Context, userID string, filter model.LogFilter) ([]model.Exercise, error)

	// CountUsers and CountExercises report collection sizes for the stats surface.
	CountUsers(ctx context.Context) (int64, error)
	CountExercises(ctx context.Context) (int64, error)

	// Close releases the underlying connection, if any.
	Close(ctx context.Context) error
}
