// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package piste implements the authenticated transport to the Legifrance
// API behind the PISTE platform: OAuth2 client-credentials token lifecycle
// and retrying JSON-over-HTTPS calls to the consult endpoints.
package piste

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/pdiddy/legifrance-proxy/internal/metrics"
	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

const (
	// tokenSafetyMargin is subtracted from the advertised token lifetime
	// so a token handed to a caller stays valid while the call is in
	// flight.
	tokenSafetyMargin = 60 * time.Second

	// defaultTokenLifetime applies when the token endpoint omits
	// expires_in.
	defaultTokenLifetime = 3600 * time.Second
)

// TokenManager acquires, caches, and refreshes the OAuth2 bearer token for
// the PISTE platform. One instance is shared process-wide; it is safe for
// concurrent use and guarantees at most one in-flight refresh.
type TokenManager struct {
	cfg    types.PisteConfig
	client *http.Client

	mu     sync.RWMutex
	token  string
	expiry time.Time

	// now is replaceable in tests.
	now func() time.Time
}

// NewTokenManager validates credentials and returns a manager. Missing
// client id or secret is an AuthError raised here, before any network call.
func NewTokenManager(cfg types.PisteConfig, client *http.Client) (*TokenManager, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, &AuthError{Reason: "PISTE client id or client secret missing"}
	}
	return &TokenManager{cfg: cfg, client: client, now: time.Now}, nil
}

// Acquire returns a currently valid token, refreshing transparently when
// the cached one is absent or inside the safety margin of expiry.
// Concurrent callers observing an expired cache trigger exactly one token
// request; the rest wait and observe its result.
func (m *TokenManager) Acquire(ctx context.Context) (string, error) {
	m.mu.RLock()
	if m.validLocked() {
		token := m.token
		m.mu.RUnlock()
		return token, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.validLocked() {
		return m.token, nil
	}
	return m.refreshLocked(ctx)
}

// Invalidate clears the cached token unconditionally. The transport calls
// it after a 401 from the API so the next Acquire fetches a fresh token.
func (m *TokenManager) Invalidate() {
	m.mu.Lock()
	m.token = ""
	m.expiry = time.Time{}
	m.mu.Unlock()
}

// validLocked reports whether the cached token exists and is outside the
// safety margin. Callers must hold mu in either mode.
func (m *TokenManager) validLocked() bool {
	return m.token != "" && m.now().Before(m.expiry)
}

// tokenResponse is the OAuth2 token endpoint payload. expires_in is
// documented as an integer but has been observed as a quoted string, so it
// is coerced on decode.
type tokenResponse struct {
	AccessToken string        `json:"access_token"`
	ExpiresIn   flexibleInt64 `json:"expires_in"`
}

// flexibleInt64 decodes a JSON number, a quoted decimal string, or null.
type flexibleInt64 int64

func (f *flexibleInt64) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("expires_in %q is not an integer", s)
	}
	*f = flexibleInt64(v)
	return nil
}

// refreshLocked posts the client-credentials grant and installs the new
// token. Callers must hold mu exclusively.
func (m *TokenManager) refreshLocked(ctx context.Context) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {m.cfg.ClientID},
		"client_secret": {m.cfg.ClientSecret},
		"scope":         {"openid"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &AuthError{Reason: fmt.Sprintf("building token request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", &AuthError{Reason: fmt.Sprintf("token request: %v", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &AuthError{Reason: fmt.Sprintf("reading token response: %v", err)}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return "", &AuthError{Reason: fmt.Sprintf("parsing token response: %v", err)}
	}
	if tr.AccessToken == "" {
		return "", &AuthError{Reason: "token response without access_token"}
	}

	lifetime := time.Duration(tr.ExpiresIn) * time.Second
	if lifetime <= 0 {
		lifetime = defaultTokenLifetime
	}

	m.token = tr.AccessToken
	m.expiry = m.now().Add(lifetime - tokenSafetyMargin)
	metrics.TokenRefreshes.Inc()

	return m.token, nil
}
