// Package config loads process configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11. The
// optional .env file in the working directory is applied once, then any struct
// annotated with `env` tags can be parsed. Each configuration type is parsed a
// single time and cached for the rest of the process.
//
// Settings describes the knobs of the formkit binary: which backend serves
// initial configuration, counters and uniqueness lookups, the debounce applied
// before remote checks, simulated latencies of the in-memory backend, and the
// logger setup.
//
// # Usage
//
//	var s config.Settings
//	if err := config.Load(&s); err != nil {
//		log.Fatal(err)
//	}
//	if err := s.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// Extra .env files may be applied with LoadEnvFiles before the first Load.
// Tests that mutate the environment call Reset to drop the cache.
//
// # Error Handling
//
// Load returns ErrNilPointer for a nil target and wraps parse failures with
// ErrParsingConfig. MustLoad panics instead.
package config
