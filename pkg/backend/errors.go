package backend

import "errors"

var (
	ErrFetchConfig     = errors.New("backend: failed to fetch initial config")
	ErrFetchCounter    = errors.New("backend: failed to fetch counter")
	ErrCheckUniqueness = errors.New("backend: failed to check uniqueness")
)
