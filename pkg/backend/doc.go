// Package backend defines the external service forms depend on: an initial
// configuration for choice fields, a fresh counter for derived fields and a
// uniqueness lookup for async validators.
//
// Memory is an in-process implementation with simulated latency. The
// redisbackend and httpbackend subpackages provide networked ones.
//
//	r := backend.NewMemory(backend.WithDelays(0, 0, 0))
//	nickname := validator.Uniqueness("nickname", backend.UniquenessFunc(r), 100*time.Millisecond)
//
// Calls are never retried. Errors wrap ErrFetchConfig, ErrFetchCounter or
// ErrCheckUniqueness.
package backend
