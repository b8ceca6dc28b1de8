package validator

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// ValidationError is one failed code on one control path. TranslationKey and
// TranslationValues feed a message catalog; Message is the bare code.
type ValidationError struct {
	Field             string
	Message           string
	TranslationKey    string
	TranslationValues map[string]any
}

// ValidationErrors is what a rejected submit returns, in report order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ErrValidationFailed.Error()
	}
	var b strings.Builder
	b.WriteString(ErrValidationFailed.Error())
	for i, e := range ve {
		if i == 0 {
			b.WriteString(": ")
		} else {
			b.WriteString("; ")
		}
		b.WriteString(e.Field + ": " + e.Message)
	}
	return b.String()
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationErrors value.
func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	return slices.ContainsFunc(ve, func(e ValidationError) bool { return e.Field == field })
}

// Get returns the messages recorded for field.
func (ve ValidationErrors) Get(field string) []string {
	var out []string
	for _, e := range ve {
		if e.Field == field {
			out = append(out, e.Message)
		}
	}
	return out
}

// Fields returns the failing paths in first-seen order.
func (ve ValidationErrors) Fields() []string {
	var out []string
	for _, e := range ve {
		if !slices.Contains(out, e.Field) {
			out = append(out, e.Field)
		}
	}
	return out
}

func (ve ValidationErrors) IsEmpty() bool { return len(ve) == 0 }

// ExtractValidationErrors returns the ValidationErrors wrapped in err, if any.
func ExtractValidationErrors(err error) ValidationErrors {
	var ve ValidationErrors
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

func IsValidationError(err error) bool {
	var ve ValidationErrors
	return errors.As(err, &ve)
}

// OutcomeErrors flattens an outcome into one ValidationError per code, in
// code order. The code doubles as message and translation key.
func OutcomeErrors(field string, o Outcome) ValidationErrors {
	if o.Passed() {
		return nil
	}
	errs := make(ValidationErrors, 0, len(o))
	for _, code := range o.Codes() {
		errs = append(errs, ValidationError{
			Field:             field,
			Message:           code,
			TranslationKey:    code,
			TranslationValues: Params(o[code]),
		})
	}
	return errs
}

// Params turns an error payload into template parameters.
// A list of names becomes "items", a map is copied as is, true carries no
// parameters and any other value is exposed as "value".
func Params(payload any) map[string]any {
	switch p := payload.(type) {
	case nil, bool:
		return nil
	case map[string]any:
		return maps.Clone(p)
	case []string:
		return map[string]any{"items": p}
	default:
		return map[string]any{"value": p}
	}
}
