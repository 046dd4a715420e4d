package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/bookfair/pkg/cache"
	bferrors "github.com/matzehuels/bookfair/pkg/errors"
	"github.com/matzehuels/bookfair/pkg/observability"
)

// DefaultTimeout bounds every request made with the default HTTP client.
const DefaultTimeout = 10 * time.Second

// DefaultCacheTTL is how long event and genre listings are reused.
const DefaultCacheTTL = 5 * time.Minute

// Client talks to the reservation backend.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache
	keys    cache.Keyer
	ttl     time.Duration
	token   string
	headers map[string]string

	attempts   int
	retryDelay time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithCache stores listing responses in store for ttl.
func WithCache(store cache.Cache, ttl time.Duration) Option {
	return func(c *Client) { c.cache, c.ttl = store, ttl }
}

// WithKeyer sets the key layout used for cached responses.
func WithKeyer(k cache.Keyer) Option { return func(c *Client) { c.keys = k } }

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option { return func(c *Client) { c.token = token } }

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if c.headers == nil {
			c.headers = make(map[string]string)
		}
		c.headers[key] = value
	}
}

// NewClient creates a client for the backend at baseURL (for example
// "https://api.bookfair.lk"). A trailing slash or /api suffix is ignored.
func NewClient(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	base = strings.TrimSuffix(base, "/api")
	c := &Client{
		baseURL: base,
		http:    NewHTTPClient(),
		cache:   cache.NewNullCache(),
		keys:    cache.NewDefaultKeyer(),
		ttl:     DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewHTTPClient returns an HTTP client with [DefaultTimeout].
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// SetToken replaces the bearer token. An empty token makes later calls
// anonymous.
func (c *Client) SetToken(token string) { c.token = token }

// Token returns the current bearer token.
func (c *Client) Token() string { return c.token }

// BaseURL returns the normalized backend URL.
func (c *Client) BaseURL() string { return c.baseURL }

// =============================================================================
// Caching
// =============================================================================

// cached loads v from the cache under (namespace, key) or runs fetch and
// stores the result. refresh skips the lookup but still writes.
func (c *Client) cached(ctx context.Context, namespace, key string, refresh bool, v any, fetch func() error) error {
	ck := c.keys.HTTPKey(namespace, key)
	if !refresh {
		ok, err := cache.GetJSON(ctx, c.cache, ck, v)
		if ok && err == nil {
			observability.Cache().OnCacheHit(ctx, namespace)
			return nil
		}
		observability.Cache().OnCacheMiss(ctx, namespace)
	}
	if err := fetch(); err != nil {
		return err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	if err := c.cache.Set(ctx, ck, data, c.ttl); err == nil {
		observability.Cache().OnCacheSet(ctx, namespace, len(data))
	}
	return nil
}

// =============================================================================
// Requests
// =============================================================================

type request struct {
	method string
	path   string
	body   any
	auth   authMode
	accept string
}

type authMode int

const (
	authNone     authMode = iota
	authOptional          // send the token when there is one
	authRequired          // fail before the call when there is none
)

// do performs req and returns the raw body of a 2xx response. Non-2xx
// responses are turned into coded errors carrying the backend message.
func (c *Client) do(ctx context.Context, req request) ([]byte, error) {
	if req.auth == authRequired && c.token == "" {
		return nil, bferrors.New(bferrors.ErrCodeUnauthorized, "Please login to continue")
	}

	var body io.Reader
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, bferrors.Wrap(bferrors.ErrCodeInternal, err, "encode request")
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeInvalidInput, err, "build request")
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.accept != "" {
		httpReq.Header.Set("Accept", req.accept)
	} else {
		httpReq.Header.Set("Accept", "application/json")
	}
	httpReq.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" && req.auth != authNone {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	host, path := httpReq.URL.Host, httpReq.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.method, host, path)
	start := time.Now()

	resp, err := c.http.Do(httpReq)
	if err != nil {
		hooks.OnError(ctx, req.method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, bferrors.Wrap(bferrors.ErrCodeNetwork, err, "%s %s", req.method, req.path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	hooks.OnResponse(ctx, req.method, host, path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, bferrors.Wrap(bferrors.ErrCodeNetwork, err, "read %s", req.path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &bferrors.StatusError{Status: resp.StatusCode, Message: envelopeMessage(data)}
		msg := se.Message
		if msg == "" {
			msg = fmt.Sprintf("%s %s failed", req.method, req.path)
		}
		return nil, bferrors.Wrap(se.Code(), se, "%s", msg)
	}
	return data, nil
}

// getJSON fetches path and decodes the payload (envelope data or bare body)
// into v.
func (c *Client) getJSON(ctx context.Context, path string, auth authMode, v any) error {
	data, err := c.get(ctx, path, auth)
	if err != nil {
		return err
	}
	return decodePayload(data, v)
}

// getList fetches path and decodes a list payload.
func getList[T any](ctx context.Context, c *Client, path string, auth authMode) ([]T, error) {
	data, err := c.get(ctx, path, auth)
	if err != nil {
		return nil, err
	}
	return decodeList[T](data)
}

func pathID(id string) string { return url.PathEscape(id) }
