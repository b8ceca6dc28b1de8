package redisbackend

import "errors"

var (
	// ErrNotSeeded is returned when the config hash is missing; call Seed first.
	ErrNotSeeded = errors.New("redisbackend: config not seeded")
	ErrSeed      = errors.New("redisbackend: failed to seed")
)
