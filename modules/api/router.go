package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// Mountable is a service exposing its own routes.
type Mountable interface {
	Handle() http.Handler
}

// RouterOptions configures what the API serves. Every service is optional
// and only mounted when provided.
type RouterOptions struct {
	Lesson  Mountable
	Address Mountable
	Profile Mountable

	// Backend serves the backend.Reader protocol, see httpbackend.NewHandler.
	Backend http.Handler
	// BackendLimit throttles Backend, e.g. ratelimiter.Middleware.
	BackendLimit func(http.Handler) http.Handler
	// Metrics serves the Prometheus exposition.
	Metrics http.Handler
	// Checks gate /health/ready.
	Checks []httpserver.Check

	Logger *slog.Logger
}

// Router builds the formkit API.
//
// Example:
//
//	r := api.Router(api.RouterOptions{
//	    Lesson:  lesson.NewService(cfg, log),
//	    Backend: httpbackend.NewHandler(reader, log),
//	    Logger:  log,
//	})
//	srv.Run(ctx, r)
func Router(opts RouterOptions) chi.Router {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(accessLog(log))

	r.Get("/health/live", httpserver.LivenessHandler())
	r.Get("/health/ready", httpserver.ReadinessHandler(log, opts.Checks...))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	r.Route("/forms", func(forms chi.Router) {
		if opts.Lesson != nil {
			forms.Mount("/lesson", opts.Lesson.Handle())
		}
		if opts.Address != nil {
			forms.Mount("/address", opts.Address.Handle())
		}
		if opts.Profile != nil {
			forms.Mount("/profile", opts.Profile.Handle())
		}
	})
	if opts.Backend != nil {
		r.Route("/backend", func(b chi.Router) {
			if opts.BackendLimit != nil {
				b.Use(opts.BackendLimit)
			}
			b.Mount("/", opts.Backend)
		})
	}
	return r
}

func accessLog(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			log.DebugContext(r.Context(), "request served",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				logger.Duration(time.Since(start)),
			)
		})
	}
}
