package lesson

import (
	"fmt"
	"time"
)

// Input is a lesson submission as sent by a client. Dates use the
// YYYY-MM-DD layout; an empty date clears the field.
type Input struct {
	Title     string `json:"title" form:"title"`
	Completed bool   `json:"completed" form:"completed"`
	FromDate  string `json:"fromDate" form:"fromDate"`
	ToDate    string `json:"toDate" form:"toDate"`
	Nickname  string `json:"nickname" form:"nickname"`
	Username  string `json:"username" form:"username"`
}

// Apply writes in into the form. The title is picked through the
// selector, and the completed flag goes first so the period is enabled or
// disabled before its dates are set. Nothing changes when a date does not
// parse or the title is not an option.
func (l *Lesson) Apply(in Input) error {
	if err := l.Selector.check(in.Title); err != nil {
		return err
	}
	from, err := parseDate(FieldFromDate, in.FromDate)
	if err != nil {
		return err
	}
	to, err := parseDate(FieldToDate, in.ToDate)
	if err != nil {
		return err
	}

	if err := l.Completed.SetValue(in.Completed); err != nil {
		return err
	}
	if err := l.Selector.Select(in.Title); err != nil {
		return err
	}
	return l.form.Root().Patch(map[string]any{
		FieldPeriod + "." + FieldFromDate: from,
		FieldPeriod + "." + FieldToDate:   to,
		FieldNickname:                     in.Nickname,
		FieldUsername:                     in.Username,
	})
}

func parseDate(field, s string) (any, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidDate, field, s)
	}
	return d, nil
}
