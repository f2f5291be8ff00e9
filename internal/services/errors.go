package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced entity id did not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means a field failed validation before any write.
	ErrInvalidInput = errors.New("invalid input")
)

// Denial reasons carried by ForbiddenError. Callers surface them as distinct
// failure responses so "wrong role" and "wrong owner" stay distinguishable.
const (
	ReasonRoleNotPermitted = "role_not_permitted"
	ReasonNotOwner         = "not_owner"
)

type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

func forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// IsForbidden reports whether err is an authorization denial, and if so
// returns its reason.
func IsForbidden(err error) (string, bool) {
	var fe *ForbiddenError
	if errors.As(err, &fe) {
		return fe.Reason, true
	}
	return "", false
}

func invalidInput(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
