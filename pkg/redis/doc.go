// Package redis connects to a Redis server for the redis-backed form
// backend.
//
// Connect parses a redis:// URL, pings the server and retries a bounded
// number of times. Healthcheck returns a check suitable for readiness
// endpoints.
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
// Config is populated from REDIS_URL, REDIS_RETRY_ATTEMPTS,
// REDIS_RETRY_INTERVAL and REDIS_CONNECT_TIMEOUT.
package redis
