package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/backend/httpbackend"
	"github.com/dmitrymomot/formkit/pkg/backend/redisbackend"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
	"github.com/dmitrymomot/formkit/pkg/redis"
)

// source is an opened backend with the checks that tell whether it is
// reachable and the cleanup to run when done.
type source struct {
	reader backend.Reader
	checks []httpserver.Check
	// limits holds rate limiter state next to the backend data.
	limits ratelimiter.Store
	close  func()
}

func (a *app) openBackend(ctx context.Context) (*source, error) {
	s := a.settings
	switch s.Backend {
	case config.BackendRedis:
		var cfg redis.Config
		if err := config.Load(&cfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open redis backend: %w", err)
		}
		r := redisbackend.New(client, s.KeyPrefix)
		if err := r.Seed(ctx, backend.DefaultConfig, s.Blocklist); err != nil {
			_ = client.Close()
			return nil, err
		}
		a.log.InfoContext(ctx, "redis backend seeded",
			logger.Component("backend"),
			slog.Int("blocklist", len(s.Blocklist)),
		)
		return &source{
			reader: r,
			checks: []httpserver.Check{redis.Healthcheck(client)},
			limits: ratelimiter.NewRedisStore(client, s.KeyPrefix+"ratelimit:"),
			close:  func() { _ = client.Close() },
		}, nil

	case config.BackendHTTP:
		c, err := httpbackend.NewClient(s.BackendURL)
		if err != nil {
			return nil, err
		}
		return &source{reader: c, limits: ratelimiter.NewMemoryStore(), close: func() {}}, nil

	default:
		m := backend.NewMemory(
			backend.WithDelays(s.ConfigDelay, s.CounterDelay, s.LookupDelay),
			backend.WithBlocklist(s.Blocklist...),
		)
		return &source{reader: m, limits: ratelimiter.NewMemoryStore(), close: func() {}}, nil
	}
}
