package validator

import "errors"

var (
	// ErrValidationFailed is matched by every ValidationErrors value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrValidatorFault marks a validator that panicked or otherwise misbehaved.
	// Faults are logged and the validator is treated as passing.
	ErrValidatorFault = errors.New("validator fault")
)

// Error codes produced by the built-in rules.
const (
	CodeRequired             = "required"
	CodeToDateBeforeFromDate = "toDateIsPreviousThanFromDate"
	CodeMainStreetNotAllowed = "mainStreetNotAllowed"
)
