// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package piste

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/legifrance-proxy/internal/metrics"
	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// Consult endpoints exposed by the Legifrance engine.
const (
	endpointSearch     = "search"
	endpointGetArticle = "getArticle"
)

// retryBaseDelay is the base duration for exponential backoff on transient
// failures: 200ms, 400ms. Tests override this to avoid real sleeps.
var retryBaseDelay = 200 * time.Millisecond

// maxAttempts is the total attempt budget per logical call, shared between
// status-based and network-level retries.
const maxAttempts = 3

// transientStatus lists the response codes worth retrying.
var transientStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// defaultTimeout applies when the config leaves the request timeout unset.
const defaultTimeout = 30 * time.Second

// Client is the process-wide transport to the Legifrance consult API. It
// owns one pooled http.Client and the token manager, and is safe for
// concurrent use by many simultaneous calls.
type Client struct {
	http      *http.Client
	tokens    *TokenManager
	base      string
	userAgent string
}

// NewClient builds the transport from config. The API base is normalized
// to end in "/consult"; missing credentials surface here as an AuthError
// before any network call.
func NewClient(cfg types.PisteConfig) (*Client, error) {
	base, err := consultBase(cfg.APIBase)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := &http.Client{Timeout: timeout}

	tokens, err := NewTokenManager(cfg, httpClient)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:      httpClient,
		tokens:    tokens,
		base:      base,
		userAgent: cfg.UserAgent,
	}, nil
}

// Close releases pooled connections. Call at process shutdown.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Tokens exposes the token manager, mainly so tests and the serve command
// can force invalidation.
func (c *Client) Tokens() *TokenManager { return c.tokens }

// consultBase normalizes the API base URL: trailing slashes trimmed and a
// "/consult" segment appended if absent. An empty base is a configuration
// error.
func consultBase(base string) (string, error) {
	b := strings.TrimRight(strings.TrimSpace(base), "/")
	if b == "" {
		return "", fmt.Errorf("legifrance API base URL is empty")
	}
	if !strings.HasSuffix(b, "/consult") {
		b += "/consult"
	}
	return b, nil
}

// Search posts a search payload to /consult/search.
func (c *Client) Search(ctx context.Context, payload any) (map[string]any, error) {
	return c.Post(ctx, endpointSearch, payload)
}

// GetArticle fetches one article by its LEGIARTI identifier via
// /consult/getArticle.
func (c *Client) GetArticle(ctx context.Context, id string) (map[string]any, error) {
	return c.Post(ctx, endpointGetArticle, map[string]string{"id": id})
}

// httpResult is a fully-read response.
type httpResult struct {
	status int
	body   []byte
}

// Post issues an authenticated JSON POST to a consult endpoint.
//
// Per call: a bearer token is acquired and attached; a 401 triggers one
// forced token invalidation and an immediate re-send, never more than once
// per call; transient statuses (429, 500, 502, 503, 504) and network-level
// failures are retried with exponential backoff (200ms·2^attempt) within a
// budget of 3 attempts; exhaustion yields an ExhaustedError wrapping the
// last failure; any other status >= 400 yields an APIError immediately, as
// does a success response without a JSON object body.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s payload: %w", endpoint, err)
	}
	reqURL := c.base + "/" + strings.TrimPrefix(endpoint, "/")

	var (
		final     *httpResult
		lastErr   error
		refreshed bool
	)

	for attempt := 0; attempt < maxAttempts; attempt++ {
		res, err := c.send(ctx, reqURL, payload)
		if err != nil {
			var ae *AuthError
			if errors.As(err, &ae) {
				return nil, err
			}
			lastErr = err
		} else {
			if res.status == http.StatusUnauthorized && !refreshed {
				c.tokens.Invalidate()
				refreshed = true
				retried, retryErr := c.send(ctx, reqURL, payload)
				if retryErr != nil {
					var ae *AuthError
					if errors.As(retryErr, &ae) {
						return nil, retryErr
					}
					lastErr = retryErr
					res = nil
				} else {
					res = retried
				}
			}
			if res != nil {
				if !transientStatus[res.status] {
					final = res
					break
				}
				lastErr = fmt.Errorf("legifrance %s returned HTTP %d", endpoint, res.status)
			}
		}

		if attempt < maxAttempts-1 {
			metrics.PisteRetries.Inc()
			if err := sleepBackoff(ctx, attempt); err != nil {
				return nil, err
			}
		}
	}

	if final == nil {
		return nil, &ExhaustedError{Endpoint: endpoint, Err: lastErr}
	}
	if final.status >= 400 {
		return nil, &APIError{Endpoint: endpoint, Status: final.status, Body: string(final.body)}
	}

	var decoded map[string]any
	if err := json.Unmarshal(final.body, &decoded); err != nil {
		return nil, &APIError{
			Endpoint: endpoint,
			Status:   final.status,
			Body:     string(final.body),
			Reason:   "response body is not a JSON object",
		}
	}
	return decoded, nil
}

// send performs one authenticated request and reads the body fully.
// AuthErrors from token acquisition pass through untouched; any other
// error is network-level and treated as transient by the caller.
func (c *Client) send(ctx context.Context, reqURL string, payload []byte) (*httpResult, error) {
	token, err := c.tokens.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	metrics.PisteRequests.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &httpResult{status: resp.StatusCode, body: body}, nil
}

// sleepBackoff waits retryBaseDelay·2^attempt or until ctx is done.
func sleepBackoff(ctx context.Context, attempt int) error {
	delay := retryBaseDelay << attempt
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}
