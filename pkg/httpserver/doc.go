// Package httpserver runs an http.Handler until a context ends and shuts it
// down gracefully.
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
//	defer stop()
//	err := srv.Run(ctx, router)
//
// The listener is bound before Run starts serving, so Addr reports the real
// port after Ready is closed even when the address was "host:0".
//
// LivenessHandler and ReadinessHandler serve the health endpoints; readiness
// runs Check functions such as redis.Healthcheck.
package httpserver
