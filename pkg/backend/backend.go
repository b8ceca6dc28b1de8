package backend

import (
	"context"

	"golang.org/x/text/cases"

	"github.com/dmitrymomot/formkit/pkg/validator"
)

// InitialConfig seeds a choice field: its default and the allowed options.
type InitialConfig struct {
	DefaultValue string   `json:"defaultValue"`
	Options      []string `json:"options"`
}

// Counter is a freshly minted sequence value.
type Counter struct {
	Counter string `json:"counter"`
}

// Uniqueness is the answer to a uniqueness lookup. Suggestions are only
// populated when Valid is false.
type Uniqueness struct {
	Valid       bool     `json:"valid"`
	Suggestions []string `json:"suggestions"`
}

// Reader is the external service forms are initialized and checked against.
// Calls are not retried; failures propagate to the caller.
type Reader interface {
	FetchInitialConfig(ctx context.Context) (InitialConfig, error)
	// FetchFreshCounter returns a different value on every call.
	FetchFreshCounter(ctx context.Context) (Counter, error)
	CheckUniqueness(ctx context.Context, candidate string) (Uniqueness, error)
}

// Default values served by the in-memory reader.
var (
	DefaultBlocklist = []string{"pippo", "pluto", "paperino"}
	DefaultConfig    = InitialConfig{
		DefaultValue: "Mr.",
		Options:      []string{"Mr.", "Mrs.", "Dr.", "Ms."},
	}
)

// Suggestions returns the alternatives offered for a taken candidate.
func Suggestions(candidate string) []string {
	return []string{candidate + "123", candidate + "_bis"}
}

// Fold normalizes a name for case-insensitive blocklist lookups.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// UniquenessFunc adapts r for validator.Uniqueness.
func UniquenessFunc(r Reader) validator.UniquenessFunc {
	return func(ctx context.Context, candidate string) (bool, []string, error) {
		res, err := r.CheckUniqueness(ctx, candidate)
		if err != nil {
			return false, nil, err
		}
		return res.Valid, res.Suggestions, nil
	}
}
