package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map these to status codes with errors.Is; the
// specific errors below wrap exactly one of them.
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrRateLimited = errors.New("rate limited")
	ErrConflict    = errors.New("conflict")
	ErrValidation  = errors.New("validation failed")
)

var (
	ErrApplicationNotFound = fmt.Errorf("application %w", ErrNotFound)
	ErrMessageNotFound     = fmt.Errorf("message %w", ErrNotFound)
	ErrCompanyNotFound     = fmt.Errorf("company %w", ErrNotFound)
	ErrTicketNotFound      = fmt.Errorf("ticket %w", ErrNotFound)

	ErrNotParticipant        = fmt.Errorf("%w: not a participant in this conversation", ErrForbidden)
	ErrNotCompanyMember      = fmt.Errorf("%w: not a member of this company", ErrForbidden)
	ErrSelfTicket            = fmt.Errorf("%w: members cannot open tickets with their own company", ErrForbidden)
	ErrApplicantStatusChange = fmt.Errorf("%w: applicants can only close a ticket", ErrForbidden)

	ErrOpenTicketLimit  = fmt.Errorf("%w: too many open tickets with this company", ErrRateLimited)
	ErrDailyTicketLimit = fmt.Errorf("%w: too many tickets in the last 24 hours", ErrRateLimited)
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
