package httpbackend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/formkit/pkg/backend"
	"github.com/dmitrymomot/formkit/pkg/requestid"
)

// Client is a backend.Reader talking to a remote NewHandler.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ backend.Reader = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(cl *Client) { cl.http = c }
}

// NewClient returns a Client for the API mounted at baseURL. The default HTTP
// client forwards request IDs and times out after 10s.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, errors.Join(ErrInvalidBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}
	c := &Client{
		base: u,
		http: &http.Client{Timeout: 10 * time.Second, Transport: requestid.Transport{}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) FetchInitialConfig(ctx context.Context) (backend.InitialConfig, error) {
	var cfg backend.InitialConfig
	if err := c.do(ctx, http.MethodGet, RouteConfig, nil, &cfg); err != nil {
		return backend.InitialConfig{}, errors.Join(backend.ErrFetchConfig, err)
	}
	return cfg, nil
}

func (c *Client) FetchFreshCounter(ctx context.Context) (backend.Counter, error) {
	var out backend.Counter
	if err := c.do(ctx, http.MethodPost, RouteCounter, nil, &out); err != nil {
		return backend.Counter{}, errors.Join(backend.ErrFetchCounter, err)
	}
	return out, nil
}

func (c *Client) CheckUniqueness(ctx context.Context, candidate string) (backend.Uniqueness, error) {
	var out backend.Uniqueness
	q := url.Values{CandidateParam: {candidate}}
	if err := c.do(ctx, http.MethodGet, RouteUniqueness, q, &out); err != nil {
		return backend.Uniqueness{}, errors.Join(backend.ErrCheckUniqueness, err)
	}
	if out.Suggestions == nil {
		out.Suggestions = []string{}
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, route string, q url.Values, dst any) error {
	u := c.base.JoinPath(route)
	u.RawQuery = q.Encode()
	req, err := http.NewRequestWithContext(ctx, method, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var body errorBody
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4<<10)).Decode(&body)
		return fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, body.Error)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return errors.Join(ErrDecodeResponse, err)
	}
	return nil
}
