package profile_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/modules/profile"
	"github.com/dmitrymomot/formkit/pkg/backend"
)

func do(t *testing.T, r backend.Reader, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	profile.NewService(r, nil).Handle().ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return rec.Code, out
}

func TestService(t *testing.T) {
	t.Parallel()

	t.Run("person defaults", func(t *testing.T) {
		t.Parallel()
		code, out := do(t, memory(), http.MethodGet, "/person", "")
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, map[string]any{
			"title":   "Mr.",
			"options": []any{"Mr.", "Mrs.", "Dr.", "Ms."},
		}, out["data"])
	})

	t.Run("person check", func(t *testing.T) {
		t.Parallel()
		code, out := do(t, memory(), http.MethodPost, "/person", `{"firstName":"Mario","nickname":"supermario"}`)
		require.Equal(t, http.StatusOK, code)
		data := out["data"].(map[string]any)
		assert.Equal(t, "invalid", data["status"])
		assert.Equal(t, []any{"Last name is required"}, data["messages"])
		assert.Equal(t, "Mr.", data["value"].(map[string]any)["title"])
	})

	t.Run("protocol counters advance", func(t *testing.T) {
		t.Parallel()
		r := memory()
		_, first := do(t, r, http.MethodGet, "/protocol", "")
		_, second := do(t, r, http.MethodGet, "/protocol", "")
		assert.Equal(t, "1", first["data"].(map[string]any)["counter"])
		assert.Equal(t, "2", second["data"].(map[string]any)["counter"])
	})

	t.Run("backend failure", func(t *testing.T) {
		t.Parallel()
		code, out := do(t, downReader{}, http.MethodGet, "/protocol", "")
		assert.Equal(t, http.StatusBadGateway, code)
		assert.NotNil(t, out["error"])
	})
}
