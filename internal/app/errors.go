package service

import (
	"errors"
	"fmt"
)

// ErrValidation is the kind shared by all input validation failures.
// Wrap concrete validation errors with it so callers can errors.Is both the
// kind and the specific failure.
var ErrValidation = errors.New("validation failed")

// Concrete failure kinds.
var (
	ErrEmptyUsername    = fmt.Errorf("%w: username is required", ErrValidation)
	ErrEmptyDescription = fmt.Errorf("%w: description is required", ErrValidation)
	ErrBadDuration      = fmt.Errorf("%w: duration must be a non-negative integer", ErrValidation)

	ErrUserNotFound = errors.New("user not found")
)
