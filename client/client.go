// Package client implements the SpecWork marketplace REST API client.
//
// The request core issues a single attempt per call: no retry, no circuit
// breaker, no client-side timeout. Deadlines and cancellation are carried by
// the caller's context. Failures propagate to the caller unchanged.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/specwork/specwork-go/internal/metrics"
	"github.com/specwork/specwork-go/tokenstore"
)

// Config holds client construction options.
type Config struct {
	// BaseURL is the API root, e.g. https://api.specwork.app/v1
	BaseURL string

	// Tokens supplies the persisted auth token. Defaults to an in-memory
	// store when nil.
	Tokens tokenstore.Store

	// HTTPClient overrides the underlying transport. The default client has
	// no timeout; use request contexts for deadlines.
	HTTPClient *http.Client

	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger

	// UserAgent is appended to the default agent string when set.
	UserAgent string
}

// Client is the marketplace API client. One instance is shared per process
// and is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     tokenstore.Store
	log        zerolog.Logger
	userAgent  string
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	tokens := cfg.Tokens
	if tokens == nil {
		tokens = tokenstore.NewMemoryStore()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	userAgent := "specwork-go"
	if cfg.UserAgent != "" {
		userAgent += " " + cfg.UserAgent
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
		userAgent:  userAgent,
	}, nil
}

// Tokens returns the token store the client reads on each request.
func (c *Client) Tokens() tokenstore.Store {
	return c.tokens
}

// Do issues a request against an arbitrary API path. It is the escape hatch
// for endpoints the typed methods do not cover; auth, header merging, and
// error translation behave exactly as they do for typed calls. The computed
// Authorization header cannot be overridden through headers.
func (c *Client) Do(ctx context.Context, method, path string, body any, headers map[string]string, out any) error {
	return c.do(ctx, requestOptions{
		method:  method,
		path:    path,
		body:    body,
		headers: headers,
		out:     out,
	})
}

// requestOptions describes a single API call.
type requestOptions struct {
	method  string
	path    string
	query   url.Values
	body    any
	headers map[string]string

	// requireAuth rejects the call with ErrAuthRequired before any network
	// access when no token is stored.
	requireAuth bool

	// out receives the decoded JSON response. Empty or non-JSON 2xx bodies
	// leave out untouched.
	out any
}

// do executes a single API request.
func (c *Client) do(ctx context.Context, opt requestOptions) error {
	token, err := c.tokens.Token()
	if err != nil && err != tokenstore.ErrNoToken {
		return fmt.Errorf("read token: %w", err)
	}
	if opt.requireAuth && token == "" {
		return ErrAuthRequired
	}

	rawURL := c.baseURL + opt.path
	if len(opt.query) > 0 {
		rawURL += "?" + opt.query.Encode()
	}

	var bodyReader io.Reader
	if opt.body != nil {
		payload, err := json.Marshal(opt.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, opt.method, rawURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	c.setHeaders(req, opt.headers, token)
	if opt.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resource := resourceLabel(opt.path)
	timer := metrics.StartRequest(opt.method, resource)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		timer.Done(0)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	timer.Done(resp.StatusCode)

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	c.log.Debug().
		Str("method", opt.method).
		Str("path", opt.path).
		Int("status", resp.StatusCode).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseError(respBody, resp.StatusCode)
	}

	decodeLenient(respBody, opt.out)
	return nil
}

// maxResponseBytes caps response reads at 8 MiB.
const maxResponseBytes = 8 << 20

// setHeaders builds the request header set. Defaults first, then caller
// headers, then the computed Authorization header so a stored token can never
// be overridden by a caller-supplied value.
func (c *Client) setHeaders(req *http.Request, extra map[string]string, token string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	for k, v := range extra {
		req.Header.Set(k, v)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// decodeLenient decodes a JSON body into out. An empty body or a body that is
// not valid JSON resolves to the zero value rather than an error: the server
// contract allows empty 204-style responses on mutations.
func decodeLenient(body []byte, out any) {
	if out == nil {
		return
	}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return
	}
	_ = json.Unmarshal(trimmed, out)
}

// resourceLabel extracts the leading path segment for metrics labels, keeping
// label cardinality independent of resource IDs.
func resourceLabel(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		return trimmed[:i]
	}
	if trimmed == "" {
		return "root"
	}
	return trimmed
}
