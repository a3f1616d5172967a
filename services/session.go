package services

import (
	"errors"
	"fmt"

	"franchise-membership-system/models"
)

// Session is the request-scoped identity resolved by the auth middleware and
// passed explicitly into every operation, never held as ambient state.
type Session struct {
	UserID         string
	MembershipType models.UserMembershipType
	HomeClub       string // empty when the user has no home club
}

// Shared operation errors. Handlers map these to HTTP statuses; anything
// else coming out of a service is an internal fault and must not reach the
// client verbatim.
var (
	ErrUnauthorized = errors.New("Unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
)

// ValidationError carries a client-facing message for a rejected payload.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
