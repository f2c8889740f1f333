// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that make network
// requests.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "legifrance-proxy/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PisteConfig holds credentials and endpoints for the PISTE platform that
// fronts the Legifrance API.
type PisteConfig struct {
	HTTPConfig `yaml:",inline"`

	// ClientID and ClientSecret are the OAuth2 client-credentials pair.
	// Both are required; startup fails without them.
	ClientID     string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`

	// TokenURL is the OAuth2 token endpoint.
	TokenURL string `json:"token_url" yaml:"token_url"`

	// APIBase is the Legifrance API base URL. A trailing "/consult" path
	// segment is appended if missing.
	APIBase string `json:"api_base" yaml:"api_base"`
}

// AIConfig holds shared settings for components that call a Generative AI API.
type AIConfig struct {
	// Model is the AI model identifier (e.g. "gemini-2.0-flash").
	Model string `json:"model" yaml:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxRetries is the number of retry rounds after a failed validation
	// (default 2).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// PlanConfig holds settings for the intent/plan pipeline.
type PlanConfig struct {
	AIConfig `yaml:",inline"`
}

// ServerConfig holds settings for the HTTP serving layer.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr"`

	// HistoryPath is the optional path to the sqlite resolution log.
	// Empty disables history entirely.
	HistoryPath string `json:"history_path,omitempty" yaml:"history_path,omitempty"`
}

// ProxyConfig groups all component configurations.
type ProxyConfig struct {
	Piste  PisteConfig  `json:"piste" yaml:"piste"`
	Plan   PlanConfig   `json:"plan" yaml:"plan"`
	Server ServerConfig `json:"server" yaml:"server"`
}
