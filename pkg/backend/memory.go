package backend

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"sync"
	"time"
)

// Memory is an in-process Reader that answers after fixed delays, standing
// in for a remote service. Its state is injected and can be Reset.
type Memory struct {
	mu        sync.Mutex
	config    InitialConfig
	blocklist map[string]struct{}
	counter   int64

	configDelay  time.Duration
	counterDelay time.Duration
	lookupDelay  time.Duration
}

// MemoryOption configures a Memory reader.
type MemoryOption func(*Memory)

// WithBlocklist replaces the names reported as taken. Matching is case-insensitive.
func WithBlocklist(names ...string) MemoryOption {
	return func(m *Memory) {
		m.blocklist = make(map[string]struct{}, len(names))
		for _, n := range names {
			m.blocklist[Fold(n)] = struct{}{}
		}
	}
}

// WithInitialConfig replaces the served initial config.
func WithInitialConfig(cfg InitialConfig) MemoryOption {
	return func(m *Memory) {
		m.config = InitialConfig{DefaultValue: cfg.DefaultValue, Options: slices.Clone(cfg.Options)}
	}
}

// WithDelays sets the simulated latency of each call. Zero answers immediately.
func WithDelays(config, counter, lookup time.Duration) MemoryOption {
	return func(m *Memory) {
		m.configDelay = config
		m.counterDelay = counter
		m.lookupDelay = lookup
	}
}

// NewMemory returns a reader serving DefaultConfig and DefaultBlocklist with
// delays of 2s, 500ms and 200ms unless overridden.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		configDelay:  2 * time.Second,
		counterDelay: 500 * time.Millisecond,
		lookupDelay:  200 * time.Millisecond,
	}
	WithInitialConfig(DefaultConfig)(m)
	WithBlocklist(DefaultBlocklist...)(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) FetchInitialConfig(ctx context.Context) (InitialConfig, error) {
	if err := sleep(ctx, m.configDelay); err != nil {
		return InitialConfig{}, errors.Join(ErrFetchConfig, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return InitialConfig{DefaultValue: m.config.DefaultValue, Options: slices.Clone(m.config.Options)}, nil
}

func (m *Memory) FetchFreshCounter(ctx context.Context) (Counter, error) {
	if err := sleep(ctx, m.counterDelay); err != nil {
		return Counter{}, errors.Join(ErrFetchCounter, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return Counter{Counter: strconv.FormatInt(m.counter, 10)}, nil
}

func (m *Memory) CheckUniqueness(ctx context.Context, candidate string) (Uniqueness, error) {
	if err := sleep(ctx, m.lookupDelay); err != nil {
		return Uniqueness{}, errors.Join(ErrCheckUniqueness, err)
	}
	m.mu.Lock()
	_, taken := m.blocklist[Fold(candidate)]
	m.mu.Unlock()
	if taken {
		return Uniqueness{Valid: false, Suggestions: Suggestions(candidate)}, nil
	}
	return Uniqueness{Valid: true, Suggestions: []string{}}, nil
}

// Reset restarts the counter. Meant to isolate test cases.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter = 0
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
