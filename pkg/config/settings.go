package config

import (
	"fmt"
	"time"
)

// Backend kinds accepted in FORMKIT_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendHTTP   = "http"
)

// Settings is the process-wide configuration of the formkit binary.
type Settings struct {
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	Backend    string `env:"FORMKIT_BACKEND" envDefault:"memory"` // memory, redis or http
	BackendURL string `env:"FORMKIT_BACKEND_URL"`                 // base URL of a formkit API, used by the http backend
	KeyPrefix  string `env:"FORMKIT_REDIS_PREFIX" envDefault:"formkit:"`

	SettleDelay  time.Duration `env:"FORMKIT_SETTLE_DELAY" envDefault:"100ms"`  // wait after the last keystroke before a uniqueness check
	LookupDelay  time.Duration `env:"FORMKIT_LOOKUP_DELAY" envDefault:"200ms"`  // simulated latency of the in-memory uniqueness lookup
	CounterDelay time.Duration `env:"FORMKIT_COUNTER_DELAY" envDefault:"500ms"` // simulated latency of the in-memory counter
	ConfigDelay  time.Duration `env:"FORMKIT_CONFIG_DELAY" envDefault:"2s"`     // simulated latency of the in-memory config fetch

	Blocklist []string `env:"FORMKIT_BLOCKLIST" envDefault:"pippo,pluto,paperino" envSeparator:","`
}

// Validate checks cross-field constraints env tags cannot express.
func (s Settings) Validate() error {
	switch s.Backend {
	case BackendMemory, BackendRedis:
	case BackendHTTP:
		if s.BackendURL == "" {
			return fmt.Errorf("%w: %s requires FORMKIT_BACKEND_URL", ErrUnknownBackend, s.Backend)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, s.Backend)
	}
	return nil
}
