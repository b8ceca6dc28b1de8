package profile

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/binder"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/messages"
	"github.com/dmitrymomot/formkit/pkg/respond"
)

// PersonInput is a person submission. An empty title keeps the default.
type PersonInput struct {
	Title     string `json:"title" form:"title"`
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Nickname  string `json:"nickname" form:"nickname"`
}

// PersonDefaults is what a client needs to render an empty person form.
type PersonDefaults struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// PersonResult pairs the person summary with the submitted value.
type PersonResult struct {
	messages.Summary
	Value any `json:"value"`
}

// Service serves the person and protocol forms over HTTP.
type Service struct {
	reader backend.Reader
	log    *slog.Logger
	opts   []form.Option
}

// NewService returns a Service initializing forms from r.
func NewService(r backend.Reader, log *slog.Logger, opts ...form.Option) *Service {
	if log == nil {
		log = logger.Noop()
	}
	return &Service{reader: r, log: log.With(logger.Component("profile")), opts: opts}
}

// Handle mounts the profile routes:
//
//	GET  /person     title default and options
//	POST /person     person summary and value
//	GET  /protocol   a new protocol with a fresh counter
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Get("/person", s.personDefaults)
	r.Post("/person", s.checkPerson)
	r.Get("/protocol", s.newProtocol)
	return r
}

func (s *Service) formOptions(r *http.Request) []form.Option {
	return append([]form.Option{form.WithLogger(s.log), form.WithContext(r.Context())}, s.opts...)
}

func (s *Service) personDefaults(w http.ResponseWriter, r *http.Request) {
	p, err := NewPerson(r.Context(), s.reader, s.formOptions(r)...)
	if err != nil {
		s.log.ErrorContext(r.Context(), "person form init failed", logger.Error(err))
		respond.Error(w, err)
		return
	}
	defer p.Close()
	title, _ := p.Title.Value().(string)
	respond.JSON(w, PersonDefaults{Title: title, Options: p.Options()})
}

func (s *Service) checkPerson(w http.ResponseWriter, r *http.Request) {
	var in PersonInput
	if err := binder.Bind(r, &in); err != nil {
		respond.Error(w, err)
		return
	}
	p, err := NewPerson(r.Context(), s.reader, s.formOptions(r)...)
	if err != nil {
		s.log.ErrorContext(r.Context(), "person form init failed", logger.Error(err))
		respond.Error(w, err)
		return
	}
	defer p.Close()

	values := map[string]any{
		FieldFirstName: in.FirstName,
		FieldLastName:  in.LastName,
		FieldNickname:  in.Nickname,
	}
	if in.Title != "" {
		values[FieldTitle] = in.Title
	}
	if err := p.Form().Root().Patch(values); err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, PersonResult{Summary: p.Summary(), Value: p.Form().Root().Value()})
}

func (s *Service) newProtocol(w http.ResponseWriter, r *http.Request) {
	p, err := NewProtocol(r.Context(), s.reader, s.formOptions(r)...)
	if err != nil {
		s.log.ErrorContext(r.Context(), "protocol form init failed", logger.Error(err))
		respond.Error(w, err)
		return
	}
	defer p.Close()
	respond.JSON(w, p.Form().Root().Value())
}
