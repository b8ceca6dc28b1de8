package lesson

import "errors"

var (
	ErrInvalidDate      = errors.New("lesson: invalid date, expected YYYY-MM-DD")
	ErrUnknownTitle     = errors.New("lesson: title is not one of the options")
	ErrSelectorDisabled = errors.New("lesson: title selector is disabled")
)
