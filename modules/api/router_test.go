package api_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/modules/address"
	"github.com/dmitrymomot/formkit/modules/api"
	"github.com/dmitrymomot/formkit/modules/lesson"
	"github.com/dmitrymomot/formkit/modules/profile"
	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/backend/httpbackend"
	"github.com/dmitrymomot/formkit/pkg/form"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/metrics"
	"github.com/dmitrymomot/formkit/pkg/ratelimiter"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

func newAPI(t *testing.T, checks ...httpserver.Check) *httptest.Server {
	t.Helper()
	reader := backend.NewMemory(backend.WithDelays(0, 0, 0))
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	require.NoError(t, err)

	srv := httptest.NewServer(api.Router(api.RouterOptions{
		Lesson:  lesson.NewService(lesson.Config{Reader: reader, Settle: 5 * time.Millisecond}, nil, form.WithMetrics(m)),
		Address: address.NewService(nil),
		Profile: profile.NewService(reader, nil),
		Backend: httpbackend.NewHandler(reader, nil),
		Metrics: metrics.Handler(reg),
		Checks:  checks,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func get(t *testing.T, url string) (int, string, http.Header) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body), resp.Header
}

func TestRouter(t *testing.T) {
	t.Parallel()
	srv := newAPI(t)

	t.Run("health", func(t *testing.T) {
		code, body, hdr := get(t, srv.URL+"/health/live")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ALIVE", body)
		assert.NotEmpty(t, hdr.Get(requestid.Header))

		code, body, _ = get(t, srv.URL+"/health/ready")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "READY", body)
	})

	t.Run("forms", func(t *testing.T) {
		code, body, _ := get(t, srv.URL+"/forms/lesson/titles")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Lesson 1")

		code, body, _ = get(t, srv.URL+"/forms/profile/person")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Mrs.")

		resp, err := http.Post(srv.URL+"/forms/address/check", "application/json", strings.NewReader(`{}`))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("backend through the client", func(t *testing.T) {
		c, err := httpbackend.NewClient(srv.URL + "/backend")
		require.NoError(t, err)
		res, err := c.CheckUniqueness(context.Background(), "Paperino")
		require.NoError(t, err)
		assert.False(t, res.Valid)
		assert.Equal(t, []string{"Paperino123", "Paperino_bis"}, res.Suggestions)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/forms/lesson/check", "application/json", strings.NewReader(`{"nickname":"pluto"}`))
		require.NoError(t, err)
		resp.Body.Close()

		code, body, _ := get(t, srv.URL+"/metrics")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "formkit_async_checks_scheduled_total")
	})

	t.Run("unknown route", func(t *testing.T) {
		code, _, _ := get(t, srv.URL+"/forms/unknown")
		assert.Equal(t, http.StatusNotFound, code)
	})
}

func TestRouterNotReady(t *testing.T) {
	t.Parallel()
	srv := newAPI(t, func(context.Context) error { return errors.New("redis down") })

	code, body, _ := get(t, srv.URL+"/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "NOT_READY", body)
}

func TestRouterBackendLimit(t *testing.T) {
	t.Parallel()
	bucket, err := ratelimiter.New(ratelimiter.NewMemoryStore(),
		ratelimiter.Config{Capacity: 1, RefillRate: 1, RefillInterval: time.Hour})
	require.NoError(t, err)

	srv := httptest.NewServer(api.Router(api.RouterOptions{
		Backend:      httpbackend.NewHandler(backend.NewMemory(backend.WithDelays(0, 0, 0)), nil),
		BackendLimit: ratelimiter.Middleware(bucket, ratelimiter.RemoteHost, nil),
	}))
	t.Cleanup(srv.Close)

	code, _, _ := get(t, srv.URL+"/backend/config")
	assert.Equal(t, http.StatusOK, code)
	code, _, hdr := get(t, srv.URL+"/backend/config")
	assert.Equal(t, http.StatusTooManyRequests, code)
	assert.NotEmpty(t, hdr.Get("Retry-After"))

	code, _, _ = get(t, srv.URL+"/health/live")
	assert.Equal(t, http.StatusOK, code, "only the backend is limited")
}
