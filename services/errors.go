package services

import (
	"errors"
	"fmt"
)

// Failure kinds every operation reports. Handlers map these onto HTTP statuses
// with errors.Is; wrapped details travel in the message.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

var (
	// ErrNoVacancy is returned when a room has no available units left.
	ErrNoVacancy = fmt.Errorf("no rooms available: %w", ErrConflict)

	// ErrInsufficientEarnings is returned when a withdrawal exceeds the
	// requester's available balance.
	ErrInsufficientEarnings = fmt.Errorf("insufficient earnings: %w", ErrConflict)
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, ErrNotFound)
}

func validation(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrValidation)
}
