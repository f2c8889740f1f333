// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	genai "google.golang.org/genai"

	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// ErrInvalidJSON reports a model answer that was empty or not a JSON object.
var ErrInvalidJSON = errors.New("plan: model did not return a JSON object")

// LLM completes a system+user prompt pair into a JSON object. The planner
// depends on this interface; tests substitute scripted fakes.
type LLM interface {
	CompleteJSON(ctx context.Context, system, user string) (map[string]any, error)
}

const defaultModel = "gemini-2.0-flash"

// Gemini is the production LLM backed by the Gemini API in JSON mode.
type Gemini struct {
	cli   *genai.Client
	model string
}

func NewGemini(ctx context.Context, cfg types.PlanConfig) (*Gemini, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	return &Gemini{cli: cli, model: model}, nil
}

// CompleteJSON sends one generation request with application/json response
// forcing and decodes the first candidate.
func (g *Gemini) CompleteJSON(ctx context.Context, system, user string) (map[string]any, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: user}}}},
		&genai.GenerateContentConfig{
			ResponseMIMEType:  "application/json",
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, ErrInvalidJSON
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(resp.Candidates[0].Content.Parts[0].Text), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return out, nil
}
