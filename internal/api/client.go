// Package api implements the gateway to the remote commerce service. It is
// the only component permitted to perform network I/O: every store and screen
// goes through Client. Requests carry a bearer token when one is set, bodies
// are JSON both ways, and a non-2xx response surfaces as a *StatusError. There
// is no retry, backoff, or client-side timeout; a failure propagates once to
// the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"storefront/internal/logging"
)

// TokenStore persists the auth token across process restarts. Implemented by
// localstate.Store; tests substitute an in-memory fake.
type TokenStore interface {
	Token() (string, error)
	SetToken(token string) error
}

// StatusError is returned for any non-2xx response. Callers differentiate
// failures only by the numeric status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("http error: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("http error: status %d", e.StatusCode)
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsUnauthorized reports whether err is an HTTP 401 failure.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// Client is the single HTTP client for the commerce API.
type Client struct {
	baseURL string
	http    *http.Client

	mu     sync.RWMutex
	token  string
	tokens TokenStore
}

// NewClient creates a gateway for the service at baseURL (including the
// /api/v1 prefix). When tokens is non-nil, a previously persisted token is
// restored and future SetToken calls write through to it.
func NewClient(baseURL string, tokens TokenStore) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
	}
	if tokens != nil {
		if tok, err := tokens.Token(); err == nil {
			c.token = tok
		} else {
			logging.APIError("failed to restore token: %v", err)
		}
	}
	return c
}

// SetToken updates the in-memory token and persists (or clears) it in the
// durable store as a side effect. An empty token means logged out.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	tokens := c.tokens
	c.mu.Unlock()

	if tokens != nil {
		if err := tokens.SetToken(token); err != nil {
			logging.APIError("failed to persist token: %v", err)
		}
	}
}

// Token returns the current in-memory token, "" when unauthenticated.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// request performs one API call. body (when non-nil) is JSON-encoded; the
// response is decoded into out (when non-nil). HTTP 204 yields a nil result
// and out is left untouched.
func (c *Client) request(ctx context.Context, method, endpoint string, body, out interface{}) error {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	logging.APIDebug("%s %s", method, endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		logging.APIError("%s %s: %v", method, endpoint, err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logging.APIError("%s %s: status %d", method, endpoint, resp.StatusCode)
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
