package models

import "errors"

// Sentinel errors shared by services and HTTP handlers.
var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("record not found")
	ErrStore              = errors.New("record store failure")
	ErrMissingDateRange   = errors.New("please select both start and end dates")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthenticated    = errors.New("authentication required")
)

// ConfirmationError is returned when a mutating action was requested without the
// caller confirming it. Prompt is the question to put in front of the user.
type ConfirmationError struct {
	Prompt string
}

func (e *ConfirmationError) Error() string {
	return "confirmation required: " + e.Prompt
}

// RequireConfirmation returns a *ConfirmationError unless confirmed is set.
func RequireConfirmation(confirmed bool, prompt string) error {
	if confirmed {
		return nil
	}
	return &ConfirmationError{Prompt: prompt}
}
