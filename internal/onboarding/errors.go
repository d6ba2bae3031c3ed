package onboarding

import (
	"fmt"

	"github.com/google/uuid"
)

// ErrValidation indicates a missing or empty required input
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrSessionNotFound indicates an unknown session id on status lookup
type ErrSessionNotFound struct {
	SessionID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("onboarding session not found: %s", e.SessionID)
}
