package validator

import (
	"context"
	"fmt"
	"time"
)

// UniquenessFunc asks a remote source whether candidate is still free.
// Suggestions are only meaningful when valid is false.
type UniquenessFunc func(ctx context.Context, candidate string) (valid bool, suggestions []string, err error)

// UniquenessID returns the validator id used by Uniqueness for entity.
func UniquenessID(entity string) string {
	return "uniqueness:" + entity
}

// UniquenessCode returns the error code reported for entity, e.g. "nicknameAlreadyExists".
func UniquenessCode(entity string) string {
	return entity + "AlreadyExists"
}

// Uniqueness checks the control's string value against check after the form
// has been idle for settle. A taken value fails with UniquenessCode(entity)
// and payload {"suggestions": [...]}. Empty values pass without a lookup.
func Uniqueness(entity string, check UniquenessFunc, settle time.Duration) AsyncValidator {
	code := UniquenessCode(entity)
	return AsyncValidator{
		ID:     UniquenessID(entity),
		Settle: settle,
		Check: func(ctx context.Context, c Control) (Outcome, error) {
			candidate, _ := c.Value().(string)
			if candidate == "" {
				return nil, nil
			}
			valid, suggestions, err := check(ctx, candidate)
			if err != nil {
				return nil, fmt.Errorf("uniqueness check for %s: %w", entity, err)
			}
			if valid {
				return nil, nil
			}
			if suggestions == nil {
				suggestions = []string{}
			}
			return Fail(code, map[string]any{"suggestions": suggestions}), nil
		},
	}
}
