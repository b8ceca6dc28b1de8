// Package redisbackend serves the form backend from Redis, so several
// processes share one blocklist and one counter.
//
//	client, err := redis.Connect(ctx, cfg)
//	r := redisbackend.New(client, "formkit:")
//	if err := r.Seed(ctx, backend.DefaultConfig, backend.DefaultBlocklist); err != nil {
//		return err
//	}
//
// The counter uses INCR, so each call yields a distinct value, but a caller
// that retries a failed request may skip a value.
package redisbackend
