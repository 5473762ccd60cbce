package services

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to handlers. ErrUnauthorized is deliberately opaque:
// a missing session, an unassigned role and a scope mismatch all map to the
// same error so a client cannot probe which rule it tripped. The distinct
// cause is logged server-side only.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("invalid input")
)

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
