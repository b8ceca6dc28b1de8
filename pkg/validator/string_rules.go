package validator

import (
	"reflect"
	"time"
	"unicode/utf8"
)

// IDRequired identifies the Required validator.
const IDRequired = "required"

// Required fails with code "required" when the value is empty.
// Empty means nil, "", a zero time, a nil pointer, or a zero-length
// slice, map or array. false and 0 are values, not absences.
func Required() Validator {
	return Validator{
		ID: IDRequired,
		Check: func(c Control) Outcome {
			if IsEmpty(c.Value()) {
				return Fail(CodeRequired, true)
			}
			return nil
		},
	}
}

// IsEmpty reports whether v counts as "not provided".
func IsEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case time.Time:
		return val.IsZero()
	case *time.Time:
		return val == nil || val.IsZero()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return true
		}
		return IsEmpty(rv.Elem().Interface())
	case reflect.Slice, reflect.Map:
		return rv.IsNil() || rv.Len() == 0
	case reflect.Array, reflect.String:
		return rv.Len() == 0
	}
	return false
}

// MinLengthWarning warns with text when a non-empty string value is shorter
// than min runes. Empty values produce no warning.
func MinLengthWarning(min int, text string) WarningRule {
	return WarningRule{
		ID: "min_length_warning",
		Check: func(c Control) []string {
			s, ok := c.Value().(string)
			if !ok || s == "" {
				return nil
			}
			if utf8.RuneCountInString(s) < min {
				return []string{text}
			}
			return nil
		},
	}
}
