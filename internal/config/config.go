// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config assembles the typed proxy configuration from, in order of
// precedence: environment variables (including a local .env file), an
// optional YAML config file, and .secrets/ files for credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/legifrance-proxy/internal/secrets"
	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// PISTE sandbox defaults; override for production access.
const (
	defaultTokenURL = "https://sandbox-oauth.piste.gouv.fr/api/oauth/token"
	defaultAPIBase  = "https://api.piste.gouv.fr/dila/legifrance-beta/lf-engine-app/consult"

	defaultUserAgent      = "legifrance-proxy/0.1"
	defaultTimeoutSeconds = 30
	defaultAddr           = ":8080"
)

// envBindings maps config keys to the environment variable names the
// original deployment uses.
var envBindings = map[string]string{
	"piste.client_id":       "PISTE_CLIENT_ID",
	"piste.client_secret":   "PISTE_CLIENT_SECRET",
	"piste.token_url":       "PISTE_TOKEN_URL",
	"piste.api_base":        "LEGIFRANCE_API_BASE",
	"piste.timeout_seconds": "REQUEST_TIMEOUT",
	"plan.api_key":          "GEMINI_API_KEY",
	"plan.model":            "PLAN_MODEL",
	"server.addr":           "PROXY_ADDR",
	"server.history_path":   "HISTORY_PATH",
}

// Init wires viper: .env loading, env bindings, defaults, and the optional
// config file (explicit path, ./legifrance-proxy.yaml, or
// ~/.config/legifrance-proxy/config.yaml). Call once before Load.
func Init(cfgFile string) {
	// A missing .env is the normal case outside local development.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("legifrance-proxy")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "legifrance-proxy"))
		}
	}

	for key, env := range envBindings {
		_ = viper.BindEnv(key, env)
	}

	viper.SetDefault("piste.token_url", defaultTokenURL)
	viper.SetDefault("piste.api_base", defaultAPIBase)
	viper.SetDefault("piste.timeout_seconds", defaultTimeoutSeconds)
	viper.SetDefault("piste.user_agent", defaultUserAgent)
	viper.SetDefault("server.addr", defaultAddr)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Load materializes the typed config. secretDefaults (from .secrets/)
// backfill credentials that neither the environment nor the config file
// provided. Missing PISTE credentials are a fatal startup condition.
func Load(secretDefaults map[string]string) (types.ProxyConfig, error) {
	cfg := types.ProxyConfig{
		Piste: types.PisteConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   time.Duration(viper.GetInt("piste.timeout_seconds")) * time.Second,
				UserAgent: viper.GetString("piste.user_agent"),
			},
			ClientID:     viper.GetString("piste.client_id"),
			ClientSecret: viper.GetString("piste.client_secret"),
			TokenURL:     viper.GetString("piste.token_url"),
			APIBase:      viper.GetString("piste.api_base"),
		},
		Plan: types.PlanConfig{
			AIConfig: types.AIConfig{
				Model:      viper.GetString("plan.model"),
				APIKey:     viper.GetString("plan.api_key"),
				MaxRetries: viper.GetInt("plan.max_retries"),
			},
		},
		Server: types.ServerConfig{
			Addr:        viper.GetString("server.addr"),
			HistoryPath: viper.GetString("server.history_path"),
		},
	}

	if cfg.Piste.ClientID == "" {
		cfg.Piste.ClientID = secretDefaults[secrets.KeyClientID]
	}
	if cfg.Piste.ClientSecret == "" {
		cfg.Piste.ClientSecret = secretDefaults[secrets.KeyClientSecret]
	}
	if cfg.Plan.APIKey == "" {
		cfg.Plan.APIKey = secretDefaults[secrets.KeyGeminiAPIKey]
	}

	var missing []string
	if cfg.Piste.ClientID == "" {
		missing = append(missing, "PISTE_CLIENT_ID")
	}
	if cfg.Piste.ClientSecret == "" {
		missing = append(missing, "PISTE_CLIENT_SECRET")
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing configuration: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}
