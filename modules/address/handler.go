package address

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/respond"
)

// Service serves the address form over HTTP.
type Service struct {
	log  *slog.Logger
	opts []form.Option
}

// NewService returns a Service. opts are passed to every form it builds.
func NewService(log *slog.Logger, opts ...form.Option) *Service {
	if log == nil {
		log = logger.Noop()
	}
	return &Service{log: log.With(logger.Component("address")), opts: opts}
}

// Handle mounts POST /check and POST /submit.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Post("/check", s.check)
	r.Post("/submit", s.submit)
	return r
}

func (s *Service) check(w http.ResponseWriter, r *http.Request) {
	c, err := s.evaluate(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer c.Close()
	respond.JSON(w, c.Summary())
}

func (s *Service) submit(w http.ResponseWriter, r *http.Request) {
	c, err := s.evaluate(r)
	if err != nil {
		respond.Error(w, err)
		return
	}
	defer c.Close()
	if err := c.Form().Submit(); err != nil {
		s.log.InfoContext(r.Context(), "address rejected", logger.Error(err))
		respond.Error(w, err)
		return
	}
	respond.JSON(w, c.Form().Root().Value())
}

func (s *Service) evaluate(r *http.Request) (*Composer, error) {
	var in Input
	if err := binder.Bind(r, &in); err != nil {
		return nil, err
	}
	c := New(append([]form.Option{form.WithLogger(s.log), form.WithContext(r.Context())}, s.opts...)...)
	if err := c.Apply(in); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}
