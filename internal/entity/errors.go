package entity

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to transport status codes with errors.Is.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	ErrSessionNotFound = fmt.Errorf("chat session %w", ErrNotFound)
	ErrBeanNotFound    = fmt.Errorf("bean %w", ErrNotFound)
	ErrRecipeNotFound  = fmt.Errorf("recipe %w", ErrNotFound)
	ErrProblemNotFound = fmt.Errorf("problem %w", ErrNotFound)
	ErrCauseNotFound   = fmt.Errorf("cause %w", ErrNotFound)
	ErrLogNotFound     = fmt.Errorf("log %w", ErrNotFound)

	ErrDuplicateRecipe = fmt.Errorf("a recipe for this bean and brew method already exists: %w", ErrConflict)
	ErrProblemExists   = fmt.Errorf("problem already exists: %w", ErrConflict)
	ErrCauseExists     = fmt.Errorf("cause already exists for this problem: %w", ErrConflict)

	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrUnauthorized)

	ErrSnapshotsDisabled   = fmt.Errorf("knowledge snapshots are not configured: %w", ErrValidation)
	ErrTranscriptsDisabled = fmt.Errorf("transcripts need a database connection: %w", ErrValidation)
)

// NewValidationError wraps a human readable reason as a validation failure.
func NewValidationError(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}
