package validator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Control is the read-only view of a field or group handed to validators.
// Validators never receive the live node, so they are free to run while the
// owning form holds its lock.
type Control interface {
	Name() string
	Value() any
	Child(name string) (Control, bool)
	HasValidator(id string) bool
}

// Validator is a synchronous check with a stable identity.
// Attaching a second validator with the same ID is a no-op.
type Validator struct {
	ID    string
	Check func(c Control) Outcome
}

// AsyncValidator is a remote or otherwise slow check. The owning form waits
// Settle after the last value change before calling Check, and discards the
// result if the value changed again in the meantime.
type AsyncValidator struct {
	ID     string
	Settle time.Duration
	Check  func(ctx context.Context, c Control) (Outcome, error)
}

// WarningRule produces informational messages that never affect validity.
type WarningRule struct {
	ID    string
	Check func(c Control) []string
}

// guard calls fn and turns a panic into ErrValidatorFault tagged with id.
func guard[T any](id string, fn func() (T, error)) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			out, err = zero, errors.Join(ErrValidatorFault, fmt.Errorf("%s: %v", id, r))
		}
	}()
	return fn()
}

// Safe runs v, converting a panic into ErrValidatorFault.
func Safe(v Validator, c Control) (Outcome, error) {
	if v.Check == nil {
		return nil, nil
	}
	return guard(v.ID, func() (Outcome, error) { return v.Check(c).Clone(), nil })
}

// SafeWarning runs w, converting a panic into ErrValidatorFault.
func SafeWarning(w WarningRule, c Control) ([]string, error) {
	if w.Check == nil {
		return nil, nil
	}
	return guard(w.ID, func() ([]string, error) { return w.Check(c), nil })
}

// RunAsync runs the Check of v, converting a panic into ErrValidatorFault.
func RunAsync(ctx context.Context, v AsyncValidator, c Control) (Outcome, error) {
	if v.Check == nil {
		return nil, nil
	}
	return guard(v.ID, func() (Outcome, error) {
		out, err := v.Check(ctx, c)
		return out.Clone(), err
	})
}
