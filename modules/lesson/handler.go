package lesson

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/respond"
)

// DefaultCheckTimeout bounds how long a request waits for async checks.
const DefaultCheckTimeout = 5 * time.Second

// Service serves the lesson form over HTTP. Every request validates a
// fresh form, so nothing is shared between clients.
type Service struct {
	cfg     Config
	log     *slog.Logger
	opts    []form.Option
	timeout time.Duration
}

// NewService returns a Service building forms from cfg. opts are passed to
// every form, e.g. form.WithMetrics.
func NewService(cfg Config, log *slog.Logger, opts ...form.Option) *Service {
	if log == nil {
		log = logger.Noop()
	}
	return &Service{cfg: cfg, log: log.With(logger.Component("lesson")), opts: opts, timeout: DefaultCheckTimeout}
}

// Handle mounts the lesson routes:
//
//	GET  /titles  suggested titles
//	POST /check   Summary of the submitted input
//	POST /submit  the form value, or 422 with the failing codes by path
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/titles", func(w http.ResponseWriter, _ *http.Request) {
		respond.JSON(w, Titles)
	})
	r.Post("/check", s.check)
	r.Post("/submit", s.submit)
	return r
}

func (s *Service) check(w http.ResponseWriter, r *http.Request) {
	l, err := s.evaluate(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer l.Close()
	respond.JSON(w, l.Summary())
}

func (s *Service) submit(w http.ResponseWriter, r *http.Request) {
	l, err := s.evaluate(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer l.Close()
	if err := l.Form().Submit(); err != nil {
		s.log.InfoContext(r.Context(), "lesson rejected", logger.Error(err))
		respond.Error(w, err)
		return
	}
	respond.JSON(w, l.Form().Root().Value())
}

// evaluate binds the request into a new lesson and waits for its async
// checks. The caller closes the returned lesson.
func (s *Service) evaluate(r *http.Request) (*Lesson, error) {
	var in Input
	if err := binder.Bind(r, &in); err != nil {
		return nil, err
	}

	opts := append([]form.Option{form.WithLogger(s.log), form.WithContext(r.Context())}, s.opts...)
	l := New(s.cfg, opts...)
	if err := l.Apply(in); err != nil {
		l.Close()
		if errors.Is(err, ErrInvalidDate) || errors.Is(err, ErrUnknownTitle) {
			return nil, errors.Join(respond.ErrBadRequest, err)
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	if err := l.Form().WaitIdle(ctx); err != nil {
		l.Close()
		return nil, err
	}
	return l, nil
}
