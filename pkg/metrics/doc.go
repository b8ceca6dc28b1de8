// Package metrics exports form async validation activity to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	m, err := metrics.New(reg)
//	f := form.New(ctx, root, form.WithMetrics(m))
//	router.Handle("/metrics", metrics.Handler(reg))
package metrics
