// Package ratelimiter throttles backend lookups with a token bucket.
//
// A Bucket holds Capacity tokens and gains RefillRate tokens every
// RefillInterval. Each request takes one; a request finding the bucket
// empty is denied without taking anything. State lives in a Store:
// MemoryStore for a single process, RedisStore to share limits between
// replicas.
//
//	b, err := ratelimiter.New(ratelimiter.NewMemoryStore(), ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     5,
//		RefillInterval: time.Second,
//	})
//	r.With(ratelimiter.Middleware(b, ratelimiter.RemoteHost, log)).Get("/uniqueness", h)
//
// Middleware answers denied requests with 429, Retry-After and the
// X-RateLimit-* headers.
package ratelimiter
