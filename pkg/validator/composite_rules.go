package validator

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Attributer is implemented by structured values (an address, a period...)
// so composite rules can inspect their named parts.
type Attributer interface {
	Attributes() map[string]any
}

func attributes(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return val, true
	case Attributer:
		return val.Attributes(), true
	}
	return nil, false
}

// CompositeRequired fails with code "required" when any of keys is empty in a
// structured value. The payload lists the missing keys in declaration order.
// A nil value lists every key.
func CompositeRequired(id string, keys ...string) Validator {
	return Validator{
		ID: id,
		Check: func(c Control) Outcome {
			attrs, _ := attributes(c.Value())
			var missing []string
			for _, k := range keys {
				if IsEmpty(attrs[k]) {
					missing = append(missing, k)
				}
			}
			if len(missing) == 0 {
				return nil
			}
			return Fail(CodeRequired, missing)
		},
	}
}

// fold builds a fresh Caser per call; Casers are stateful and not safe to share.
func fold(s string) string {
	return cases.Fold().String(s)
}

// PatternExclusion fails with code when the key attribute of a structured
// value contains substring, ignoring case.
func PatternExclusion(id, key, substring, code string) Validator {
	needle := fold(substring)
	return Validator{
		ID: id,
		Check: func(c Control) Outcome {
			attrs, ok := attributes(c.Value())
			if !ok {
				return nil
			}
			raw, ok := attrs[key]
			if !ok || IsEmpty(raw) {
				return nil
			}
			if strings.Contains(fold(fmt.Sprint(raw)), needle) {
				return Fail(code, true)
			}
			return nil
		},
	}
}
