// Package services holds the screen workflows: each validates a form, talks to
// the billing API on behalf of the logged-in partner and returns what the next
// screen needs.
package services

import (
	"errors"
	"strings"

	"github.com/RajevHacker/codespark-invoice-wizard/validation"
)

// ValidationError is returned when a form fails validation. Nothing was sent.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations.Fields(), ", ")
}

func invalid(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}

// AsViolations extracts the violations of a ValidationError.
func AsViolations(err error) (validation.Violations, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Violations, true
	}
	return nil, false
}

var (
	// ErrAlreadyCancelled is returned when cancelling an invoice twice.
	ErrAlreadyCancelled = errors.New("invoice is already cancelled")
)
