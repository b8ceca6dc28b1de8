package httpbackend

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/logger"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// Routes served by NewHandler, relative to its mount point.
const (
	RouteConfig     = "/config"
	RouteCounter    = "/counter"
	RouteUniqueness = "/uniqueness"
)

// CandidateParam is the query parameter carrying the name to check.
const CandidateParam = "candidate"

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler exposes r over HTTP:
//
//	GET  /config                   InitialConfig
//	POST /counter                  Counter
//	GET  /uniqueness?candidate=x   Uniqueness
//
// Reader failures answer 502 with {"error": "..."}.
func NewHandler(r backend.Reader, log *slog.Logger) http.Handler {
	if log == nil {
		log = logger.Noop()
	}
	log = log.With(logger.Component("backend_api"))

	mux := chi.NewRouter()
	mux.Use(requestid.Middleware, middleware.Recoverer)

	mux.Get(RouteConfig, func(w http.ResponseWriter, req *http.Request) {
		cfg, err := r.FetchInitialConfig(req.Context())
		if err != nil {
			fail(w, req, log, http.StatusBadGateway, err)
			return
		}
		respond(w, http.StatusOK, cfg)
	})

	mux.Post(RouteCounter, func(w http.ResponseWriter, req *http.Request) {
		c, err := r.FetchFreshCounter(req.Context())
		if err != nil {
			fail(w, req, log, http.StatusBadGateway, err)
			return
		}
		respond(w, http.StatusOK, c)
	})

	mux.Get(RouteUniqueness, func(w http.ResponseWriter, req *http.Request) {
		candidate := req.URL.Query().Get(CandidateParam)
		if candidate == "" {
			fail(w, req, log, http.StatusBadRequest, ErrMissingCandidate)
			return
		}
		res, err := r.CheckUniqueness(req.Context(), candidate)
		if err != nil {
			fail(w, req, log, http.StatusBadGateway, err)
			return
		}
		log.DebugContext(req.Context(), "uniqueness checked",
			logger.Candidate(candidate),
			slog.Bool("valid", res.Valid),
		)
		respond(w, http.StatusOK, res)
	})

	return mux
}

func respond(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func fail(w http.ResponseWriter, req *http.Request, log *slog.Logger, code int, err error) {
	log.ErrorContext(req.Context(), "backend request failed",
		slog.String("route", req.URL.Path),
		logger.Error(err),
	)
	respond(w, code, errorBody{Error: err.Error()})
}
