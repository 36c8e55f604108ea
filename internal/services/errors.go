package services

import (
	"errors"
	"fmt"
)

// Domain error kinds surfaced by the service layer. Handlers match on
// these with errors.Is/errors.As to pick the response status; anything
// else is an infrastructure failure.
var (
	// ErrEmailTaken is returned by registration when a user with the
	// same email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned by login for both an unknown
	// email and a wrong password, so callers cannot tell the two
	// apart and enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTaskNotFound is returned by task operations for an unknown task ID.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotTaskOwner is returned when the authenticated user is not
	// the owner of the task being mutated.
	ErrNotTaskOwner = errors.New("not the task owner")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
