package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/modules/address"
	"github.com/dmitrymomot/formkit/modules/api"
	"github.com/dmitrymomot/formkit/modules/lesson"
	"github.com/dmitrymomot/formkit/modules/profile"
	"github.com/dmitrymomot/formkit/pkg/backend/httpbackend"
	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/metrics"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
)

func newServeCmd(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sample forms and the backend protocol over HTTP",
		Long: `Starts the formkit API. Forms are served under /forms, the backend protocol
under /backend, checks under /health and Prometheus metrics under /metrics.
The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var cfg httpserver.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			var limit ratelimiter.Config
			if err := config.Load(&limit); err != nil {
				return err
			}

			src, err := a.openBackend(ctx)
			if err != nil {
				return err
			}
			defer src.close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			m, err := metrics.New(reg)
			if err != nil {
				return err
			}

			bucket, err := ratelimiter.New(src.limits, limit)
			if err != nil {
				return err
			}

			withMetrics := form.WithMetrics(m)
			router := api.Router(api.RouterOptions{
				Lesson:       lesson.NewService(lesson.Config{Reader: src.reader, Settle: a.settings.SettleDelay}, a.log, withMetrics),
				Address:      address.NewService(a.log, withMetrics),
				Profile:      profile.NewService(src.reader, a.log, withMetrics),
				Backend:      httpbackend.NewHandler(src.reader, a.log),
				BackendLimit: ratelimiter.Middleware(bucket, ratelimiter.RemoteHost, a.log),
				Metrics:      metrics.Handler(reg),
				Checks:       src.checks,
				Logger:       a.log,
			})

			srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(a.log))
			return srv.Run(ctx, router)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address, overrides FORMKIT_HTTP_ADDR")
	return cmd
}
