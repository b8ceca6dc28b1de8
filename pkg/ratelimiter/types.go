package ratelimiter

import "time"

// Config is a token bucket: Capacity tokens at most, RefillRate tokens
// added every RefillInterval.
type Config struct {
	Capacity       int           `env:"FORMKIT_LOOKUP_BURST" envDefault:"20"`
	RefillRate     int           `env:"FORMKIT_LOOKUP_REFILL_RATE" envDefault:"5"`
	RefillInterval time.Duration `env:"FORMKIT_LOOKUP_REFILL_INTERVAL" envDefault:"1s"`
}

// Result is the outcome of taking tokens from a bucket.
type Result struct {
	Limit     int
	Remaining int // negative when the request was denied
	ResetAt   time.Time
}

// Allowed reports whether the tokens were granted.
func (r Result) Allowed() bool {
	return r.Remaining >= 0
}

// RetryAfter is how long a denied caller should wait, 0 when allowed.
func (r Result) RetryAfter(now time.Time) time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(r.ResetAt.Sub(now), 0)
}

// staleAfter is how long an untouched bucket is kept. By then it has
// refilled completely, so forgetting it changes nothing.
func (c Config) staleAfter() time.Duration {
	return c.RefillInterval * time.Duration(c.Capacity/c.RefillRate+1)
}
