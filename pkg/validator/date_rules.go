package validator

import "time"

// IDDateOrder identifies the DateOrder group validator.
const IDDateOrder = "date_order"

// DateOrder is a group validator comparing two children. It passes only when
// the from child holds a date and the to child holds a strictly later one;
// otherwise it fails with CodeToDateBeforeFromDate.
func DateOrder(from, to string) Validator {
	return Validator{
		ID: IDDateOrder,
		Check: func(c Control) Outcome {
			fromDate, fromOK := childDate(c, from)
			toDate, toOK := childDate(c, to)
			if fromOK && toOK && toDate.After(fromDate) {
				return nil
			}
			return Fail(CodeToDateBeforeFromDate, true)
		},
	}
}

func childDate(c Control, name string) (time.Time, bool) {
	child, ok := c.Child(name)
	if !ok {
		return time.Time{}, false
	}
	return asDate(child.Value())
}

func asDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case time.Time:
		return d, !d.IsZero()
	case *time.Time:
		if d == nil || d.IsZero() {
			return time.Time{}, false
		}
		return *d, true
	}
	return time.Time{}, false
}
