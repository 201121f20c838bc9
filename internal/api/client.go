// Package api is the typed binding to the PlanA backend. All outbound calls
// share one Client, which owns auth-header injection, the retry policy, and
// response normalization; endpoint bindings live in the sibling files.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/jaeyoon222/PlanA/internal/auth"
	"github.com/jaeyoon222/PlanA/internal/domain"
)

const (
	requestTimeout    = 20 * time.Second
	networkRetryDelay = 300 * time.Millisecond

	refreshPath = "/refresh-token"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *auth.TokenStore
	logger     *slog.Logger

	retryDelay        time.Duration
	refreshWithCookie bool
}

type Option func(*Client)

// WithRetryDelay overrides the fixed delay before the single network retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) { c.retryDelay = d }
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCookieRefresh makes the refresh call rely on the server-set cookie
// instead of sending the refresh token in the body or header.
func WithCookieRefresh() Option {
	return func(c *Client) { c.refreshWithCookie = true }
}

func New(baseURL string, tokens *auth.TokenStore, logger *slog.Logger, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil)

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
			Jar:     jar,
		},
		tokens:     tokens,
		logger:     logger,
		retryDelay: networkRetryDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// do issues one request with the full recovery policy: a transport failure
// is retried once after a short fixed delay, a 401 triggers the single-flight
// token refresh and one re-send. Anything still failing after that comes back
// normalized (ErrNetwork, ErrAuthExpired, or a ServerError carrying the
// server's message).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	retriedNetwork := false
	retriedAuth := false

	for {
		req, err := c.newRequest(ctx, method, path, payload)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !retriedNetwork {
				retriedNetwork = true
				c.logger.Debug("request failed, retrying once", "method", method, "path", path, "error", err)
				select {
				case <-time.After(c.retryDelay):
				case <-ctx.Done():
					return ctx.Err()
				}
				continue
			}
			return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}

		if resp.StatusCode == http.StatusUnauthorized {
			drain(resp)

			if path == refreshPath || retriedAuth {
				c.tokens.Clear()
				return domain.ErrAuthExpired
			}

			if c.tokens.Refresh(ctx, c.refreshTokens) {
				retriedAuth = true
				continue
			}

			c.tokens.Clear()
			return domain.ErrAuthExpired
		}

		return c.decodeResponse(resp, out)
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string, payload []byte) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req, nil
}

func (c *Client) decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.ServerError{
			StatusCode: resp.StatusCode,
			Message:    serverMessage(resp, raw),
		}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage digs the human-readable rejection out of an error body: the
// message or error field of a JSON body, the raw text otherwise.
func serverMessage(resp *http.Response, raw []byte) string {
	fallback := fmt.Sprintf("request failed (%d)", resp.StatusCode)

	if isJSON(resp.Header) {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if err := json.Unmarshal(raw, &body); err == nil {
			if body.Message != "" {
				return body.Message
			}
			if body.Error != "" {
				return body.Error
			}
		}
		if len(raw) > 0 {
			return string(raw)
		}
		return fallback
	}

	if text := strings.TrimSpace(string(raw)); text != "" {
		return text
	}
	return fallback
}

func isJSON(h http.Header) bool {
	ct := h.Get("Content-Type")
	return strings.Contains(ct, "application/json") || strings.Contains(ct, "+json")
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
