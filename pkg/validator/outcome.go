package validator

import (
	"maps"
	"slices"
)

// Outcome is the result of a single validation pass.
// A nil or empty Outcome means the check passed; otherwise every key is an
// error code and the value is its payload (true, a list of names, a map...).
type Outcome map[string]any

// Fail builds a single-code outcome.
func Fail(code string, payload any) Outcome {
	return Outcome{code: payload}
}

func (o Outcome) Passed() bool { return len(o) == 0 }

func (o Outcome) Has(code string) bool {
	_, ok := o[code]
	return ok
}

// Get returns the payload for code, or nil when the code is absent.
func (o Outcome) Get(code string) any { return o[code] }

// Codes returns the error codes in lexical order.
func (o Outcome) Codes() []string {
	return slices.Sorted(maps.Keys(o))
}

// Clone returns a shallow copy. Cloning a passing outcome yields nil.
func (o Outcome) Clone() Outcome {
	if o.Passed() {
		return nil
	}
	return maps.Clone(o)
}

// Merge returns a new outcome with the codes of both; other wins on clashes.
func (o Outcome) Merge(other Outcome) Outcome {
	out := o.Clone()
	if out == nil {
		return other.Clone()
	}
	maps.Copy(out, other)
	return out
}
