// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// defaultMaxRetries bounds the feedback rounds per LLM call: one initial
// attempt plus two corrections.
const defaultMaxRetries = 2

// ValidationFailedError reports that the model never produced a valid
// answer within the retry budget.
type ValidationFailedError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("llm validation failed after retries: %v", e.Errors)
}

// Planner runs the pipeline: lock references, classify intent, then build
// an extraction plan, each LLM answer validated with bounded retries.
type Planner struct {
	llm        LLM
	maxRetries int
}

func NewPlanner(llm LLM, maxRetries int) *Planner {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	return &Planner{llm: llm, maxRetries: maxRetries}
}

// Plan executes the full pipeline for one question. asOf defaults to
// today (UTC) when empty. A non-legal question short-circuits into an
// empty plan rather than an error.
func (p *Planner) Plan(ctx context.Context, question, asOf string) (types.PlanResult, error) {
	if asOf == "" {
		asOf = time.Now().UTC().Format("2006-01-02")
	}

	locked := ExtractExplicitRefs(question)

	intentUser := buildIntentUserPrompt(question, locked)
	legalIntent, warnings, err := p.jsonWithRetry(ctx, intentSystemPrompt, intentUser,
		func(obj map[string]any) ValidationResult { return ValidateLegalIntent(obj, locked) },
		BuildIntentFeedback,
	)
	if err != nil {
		return types.PlanResult{}, err
	}

	if !isLegal(legalIntent) {
		return types.PlanResult{
			OK:             true,
			LockedRefs:     locked,
			LegalIntent:    legalIntent,
			ExtractionPlan: emptyPlan(question, asOf, legalIntent),
			Warnings:       warnings,
		}, nil
	}

	plannerUser := buildPlannerUserPrompt(legalIntent, asOf, question)
	extractionPlan, planWarnings, err := p.jsonWithRetry(ctx, plannerSystemPrompt, plannerUser,
		func(obj map[string]any) ValidationResult { return ValidateExtractionPlan(obj, asOf) },
		BuildPlanFeedback,
	)
	if err != nil {
		return types.PlanResult{}, err
	}

	return types.PlanResult{
		OK:             true,
		LockedRefs:     locked,
		LegalIntent:    legalIntent,
		ExtractionPlan: extractionPlan,
		Warnings:       append(warnings, planWarnings...),
	}, nil
}

// jsonWithRetry calls the LLM, validates, and retries with feedback
// appended to the system prompt until the budget runs out.
func (p *Planner) jsonWithRetry(
	ctx context.Context,
	system, user string,
	validate func(map[string]any) ValidationResult,
	feedback func([]string) string,
) (map[string]any, []string, error) {
	var (
		warnings   []string
		lastErrors []string
		suffix     string
	)

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		sys := system
		if suffix != "" {
			sys = system + "\n\n" + suffix
		}

		out, err := p.llm.CompleteJSON(ctx, sys, user)
		if err != nil {
			return nil, warnings, err
		}

		res := validate(out)
		warnings = append(warnings, res.Warnings...)
		if res.OK {
			return out, warnings, nil
		}

		lastErrors = res.Errors
		suffix = feedback(res.Errors)
	}

	return nil, warnings, &ValidationFailedError{Errors: lastErrors, Warnings: warnings}
}

func isLegal(legalIntent map[string]any) bool {
	intent, ok := legalIntent["intent"].(map[string]any)
	if !ok {
		return false
	}
	legal, _ := intent["is_legal"].(bool)
	return legal
}

// emptyPlan is the short-circuit plan for non-legal questions.
func emptyPlan(question, asOf string, legalIntent map[string]any) map[string]any {
	missing, _ := legalIntent["missing_information"].([]any)
	if missing == nil {
		missing = []any{}
	}
	return map[string]any{
		"version": "1.0",
		"meta": map[string]any{
			"user_question": question,
			"as_of":         asOf,
			"jurisdiction":  "FR",
		},
		"plan":                []any{},
		"missing_information": missing,
		"constraints": map[string]any{
			"max_sources":       12,
			"must_cite_sources": true,
		},
	}
}

// buildIntentUserPrompt injects the question and the locked references the
// model has to copy verbatim.
func buildIntentUserPrompt(question string, locked types.LockedRefs) string {
	refs, _ := json.Marshal(locked)
	return fmt.Sprintf(
		"User question:\n<<<%s>>>\n\nLocked explicit references. Copy these values into explicit_refs; you may NOT add any:\n%s\n\nAnswer only in JSON.",
		question, refs,
	)
}

// buildPlannerUserPrompt injects the LegalIntent, the pinned as-of date,
// and the original question.
func buildPlannerUserPrompt(legalIntent map[string]any, asOf, question string) string {
	intent, _ := json.Marshal(legalIntent)
	return fmt.Sprintf(
		"Build an executable ExtractionPlan from the LegalIntent below.\nReference date (as_of): %s\nOriginal question: <<<%s>>>\n\nLegalIntent:\n%s\n\nAnswer only in JSON.",
		asOf, question, intent,
	)
}
