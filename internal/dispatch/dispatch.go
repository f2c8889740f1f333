// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch routes pre-classified intent payloads to the resolution
// engine and translates outcomes into the wire envelope. It performs no
// network calls of its own.
package dispatch

import (
	"context"

	"github.com/pdiddy/legifrance-proxy/internal/metrics"
	"github.com/pdiddy/legifrance-proxy/internal/resolve"
	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// Dispatcher owns the routing decision for RESOLVE payloads.
type Dispatcher struct {
	resolver *resolve.Resolver
}

func New(resolver *resolve.Resolver) *Dispatcher {
	return &Dispatcher{resolver: resolver}
}

// Dispatch routes one intent payload. Expected non-resolvable situations
// (not legal, too vague, wrong route, unimplemented scenario) and
// resolution outcomes all land in the response envelope; only true faults
// (auth, network exhaustion, remote API errors) come back as errors.
func (d *Dispatcher) Dispatch(ctx context.Context, payload types.IntentPayload) (types.DispatchResponse, error) {
	switch payload.Intent {
	case types.IntentNotLegal:
		return types.DispatchResponse{
			OK:      false,
			Error:   types.ErrNotLegal,
			Message: "question is not a legal question",
		}, nil
	case types.IntentTooVague:
		return types.DispatchResponse{
			OK:          false,
			Error:       types.ErrTooVague,
			Message:     "question too vague; provide the missing details",
			MissingInfo: payload.MissingInfo,
		}, nil
	}

	if payload.RouteTarget != types.RouteResolve {
		return types.DispatchResponse{
			OK:      false,
			Error:   types.ErrWrongRoute,
			Message: "this RESOLVE dispatcher received a non-RESOLVE payload",
		}, nil
	}

	if payload.CodeHint != "" && payload.ArticleHint != "" {
		outcome, err := d.resolver.ResolveCodeArticle(ctx, payload.CodeHint, payload.ArticleHint, payload.DateHint)
		if err != nil {
			metrics.Resolutions.WithLabelValues("error").Inc()
			return types.DispatchResponse{}, err
		}
		metrics.Resolutions.WithLabelValues(outcome.Kind()).Inc()
		return toResponse(outcome), nil
	}

	// Other scenarios (constitution articles, numbered laws, signature
	// dates) are reserved here rather than silently dropped.
	return types.DispatchResponse{
		OK:      false,
		Error:   types.ErrNotImplemented,
		Message: "RESOLVE not implemented for this scenario; need code+article hints",
	}, nil
}

// toResponse flattens a resolution outcome into the wire envelope.
func toResponse(outcome resolve.Outcome) types.DispatchResponse {
	switch o := outcome.(type) {
	case resolve.Resolved:
		return types.DispatchResponse{
			OK:          true,
			Kind:        "article",
			Source:      o.Article.Source,
			LegiartiID:  o.Article.LegiartiID,
			Title:       o.Article.Title,
			Article:     o.Article.ArticleNum,
			DateVersion: o.Article.DateVersion,
			Raw:         o.Article.Raw,
		}
	case resolve.NotFound:
		return types.DispatchResponse{OK: false, Error: types.ErrNotFound, Message: o.Message}
	case resolve.TooBroad:
		return types.DispatchResponse{OK: false, Error: types.ErrTooBroad, Message: o.Message}
	case resolve.Ambiguous:
		return types.DispatchResponse{
			OK:         false,
			Error:      types.ErrAmbiguous,
			Message:    o.Message,
			Candidates: o.Candidates,
		}
	default:
		// Outcome is sealed; this is unreachable.
		return types.DispatchResponse{OK: false, Error: types.ErrNotImplemented, Message: "unknown outcome"}
	}
}
