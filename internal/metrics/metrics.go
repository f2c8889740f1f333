// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics registers the Prometheus instruments shared across the
// proxy. Counters live in the default registry and are served by the
// /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PisteRequests counts outbound Legifrance API responses by status.
	PisteRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "legifrance_proxy_piste_requests_total",
		Help: "Outbound Legifrance API responses, by HTTP status.",
	}, []string{"status"})

	// PisteRetries counts backoff waits taken by the transport.
	PisteRetries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legifrance_proxy_piste_retries_total",
		Help: "Transient-failure retries performed by the PISTE transport.",
	})

	// TokenRefreshes counts successful OAuth token refreshes.
	TokenRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "legifrance_proxy_token_refreshes_total",
		Help: "OAuth2 client-credentials token refreshes.",
	})

	// Resolutions counts resolution outcomes by kind.
	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "legifrance_proxy_resolutions_total",
		Help: "Resolution outcomes, by kind (resolved, not_found, too_broad, ambiguous, error).",
	}, []string{"outcome"})
)
