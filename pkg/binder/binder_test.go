package binder_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formkit/pkg/binder"
)

type input struct {
	Title     string   `json:"title" form:"title"`
	Completed bool     `json:"completed" form:"completed"`
	Count     int      `json:"count" form:"count"`
	Tags      []string `json:"tags" form:"tags"`
	Suffix    *string  `json:"suffix" form:"suffix"`
	Internal  string   `json:"-" form:"-"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	return r
}

func formRequest(values url.Values) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes and trims", func(t *testing.T) {
		t.Parallel()
		var in input
		err := binder.JSON(jsonRequest(`{"title":"  Lesson 1 ","completed":true,"count":3,"tags":["a"],"suffix":" x "}`), &in)
		require.NoError(t, err)
		assert.Equal(t, "Lesson 1", in.Title)
		assert.True(t, in.Completed)
		assert.Equal(t, 3, in.Count)
		assert.Equal(t, []string{"a"}, in.Tags)
		require.NotNil(t, in.Suffix)
		assert.Equal(t, "x", *in.Suffix)
	})

	tests := []struct {
		name string
		req  *http.Request
		err  error
	}{
		{name: "unknown field", req: jsonRequest(`{"nope":1}`), err: binder.ErrFailedToParseJSON},
		{name: "empty body", req: jsonRequest(``), err: binder.ErrFailedToParseJSON},
		{name: "trailing data", req: jsonRequest(`{"title":"a"}{"title":"b"}`), err: binder.ErrFailedToParseJSON},
		{name: "wrong type", req: jsonRequest(`{"count":"three"}`), err: binder.ErrFailedToParseJSON},
		{name: "too large", req: jsonRequest(`{"title":"` + strings.Repeat("a", binder.DefaultMaxJSONSize) + `"}`), err: binder.ErrFailedToParseJSON},
		{
			name: "wrong content type",
			req: func() *http.Request {
				r := jsonRequest(`{}`)
				r.Header.Set("Content-Type", "text/plain")
				return r
			}(),
			err: binder.ErrUnsupportedMediaType,
		},
		{
			name: "missing content type",
			req: func() *http.Request {
				r := jsonRequest(`{}`)
				r.Header.Del("Content-Type")
				return r
			}(),
			err: binder.ErrMissingContentType,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var in input
			assert.ErrorIs(t, binder.JSON(tt.req, &in), tt.err)
		})
	}
}

func TestForm(t *testing.T) {
	t.Parallel()

	t.Run("url encoded", func(t *testing.T) {
		t.Parallel()
		var in input
		err := binder.Form(formRequest(url.Values{
			"title":     {" Lesson 2 "},
			"completed": {"on"},
			"count":     {"7"},
			"tags":      {"a,b", "c"},
			"Internal":  {"ignored"},
		}), &in)
		require.NoError(t, err)
		assert.Equal(t, input{Title: "Lesson 2", Completed: true, Count: 7, Tags: []string{"a", "b", "c"}}, in)
	})

	t.Run("multipart", func(t *testing.T) {
		t.Parallel()
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		require.NoError(t, w.WriteField("title", "Lesson 3"))
		require.NoError(t, w.WriteField("suffix", "bis"))
		require.NoError(t, w.Close())
		r := httptest.NewRequest(http.MethodPost, "/", &body)
		r.Header.Set("Content-Type", w.FormDataContentType())

		var in input
		require.NoError(t, binder.Form(r, &in))
		assert.Equal(t, "Lesson 3", in.Title)
		require.NotNil(t, in.Suffix)
		assert.Equal(t, "bis", *in.Suffix)
	})

	t.Run("invalid number", func(t *testing.T) {
		t.Parallel()
		var in input
		err := binder.Form(formRequest(url.Values{"count": {"many"}}), &in)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})

	t.Run("non pointer target", func(t *testing.T) {
		t.Parallel()
		var in input
		err := binder.Form(formRequest(url.Values{"title": {"x"}}), in)
		assert.ErrorIs(t, err, binder.ErrFailedToParseForm)
	})

	t.Run("json content type", func(t *testing.T) {
		t.Parallel()
		var in input
		err := binder.Form(jsonRequest(`{}`), &in)
		assert.ErrorIs(t, err, binder.ErrUnsupportedMediaType)
	})
}

func TestBind(t *testing.T) {
	t.Parallel()

	var fromJSON, fromForm input
	require.NoError(t, binder.Bind(jsonRequest(`{"title":"a","completed":true}`), &fromJSON))
	require.NoError(t, binder.Bind(formRequest(url.Values{"title": {"a"}, "completed": {"true"}}), &fromForm))
	assert.Equal(t, fromJSON, fromForm)
}
