// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedLLM replays canned answers in order and records the prompts it
// was given.
type scriptedLLM struct {
	answers []map[string]any
	errs    []error
	calls   int
	systems []string
}

func (s *scriptedLLM) CompleteJSON(_ context.Context, system, _ string) (map[string]any, error) {
	i := s.calls
	s.calls++
	s.systems = append(s.systems, system)
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i < len(s.answers) {
		return s.answers[i], nil
	}
	return nil, errors.New("script exhausted")
}

const question = "Que dit l'article L1221-1 du code du travail ?"

// questionIntent is a valid LegalIntent for the canned question above.
func questionIntent(isLegal bool) map[string]any {
	return map[string]any{
		"intent": map[string]any{"is_legal": isLegal},
		"explicit_refs": map[string]any{
			"articles": []any{"L1221-1"},
			"codes":    []any{"code du travail"},
			"laws":     []any{},
			"dates":    []any{},
		},
		"missing_information": []any{},
	}
}

func TestPlan_FullPipeline(t *testing.T) {
	llm := &scriptedLLM{answers: []map[string]any{
		questionIntent(true),
		validExtractionPlan("2026-08-27"),
	}}

	result, err := NewPlanner(llm, 0).Plan(context.Background(), question, "2026-08-27")
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, []string{"L1221-1"}, result.LockedRefs.Articles)
	assert.Equal(t, []string{"code du travail"}, result.LockedRefs.Codes)
	assert.Equal(t, "1.0", result.ExtractionPlan["version"])
	assert.Equal(t, 2, llm.calls)
}

func TestPlan_NonLegalShortCircuits(t *testing.T) {
	intent := map[string]any{
		"intent": map[string]any{"is_legal": false},
		"explicit_refs": map[string]any{
			"articles": []any{}, "codes": []any{}, "laws": []any{}, "dates": []any{},
		},
		"missing_information": []any{"a legal question"},
	}
	llm := &scriptedLLM{answers: []map[string]any{intent}}

	result, err := NewPlanner(llm, 0).Plan(context.Background(), "Quelle est la capitale de la France ?", "2026-08-27")
	require.NoError(t, err)

	assert.True(t, result.OK)
	// The planner call never happens for non-legal questions.
	assert.Equal(t, 1, llm.calls)
	assert.Equal(t, []any{}, result.ExtractionPlan["plan"])
	assert.Equal(t, []any{"a legal question"}, result.ExtractionPlan["missing_information"])

	meta := result.ExtractionPlan["meta"].(map[string]any)
	assert.Equal(t, "2026-08-27", meta["as_of"])
	assert.Equal(t, "FR", meta["jurisdiction"])
}

func TestPlan_RetryWithFeedback(t *testing.T) {
	bad := questionIntent(true)
	bad["explicit_refs"].(map[string]any)["articles"] = []any{"L9999-9"}

	llm := &scriptedLLM{answers: []map[string]any{
		bad,
		questionIntent(true),
		validExtractionPlan("2026-08-27"),
	}}

	result, err := NewPlanner(llm, 2).Plan(context.Background(), question, "2026-08-27")
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, 3, llm.calls)

	// The second intent attempt carries the rejection feedback.
	require.Len(t, llm.systems, 3)
	assert.NotContains(t, llm.systems[0], "rejected")
	assert.Contains(t, llm.systems[1], "rejected")
	// The planner call starts from a clean system prompt.
	assert.NotContains(t, llm.systems[2], "rejected")
}

func TestPlan_ValidationExhausted(t *testing.T) {
	bad := questionIntent(true)
	delete(bad, "intent")

	llm := &scriptedLLM{answers: []map[string]any{bad, bad, bad}}

	_, err := NewPlanner(llm, 2).Plan(context.Background(), question, "2026-08-27")
	var vf *ValidationFailedError
	require.ErrorAs(t, err, &vf)
	assert.NotEmpty(t, vf.Errors)
	// One initial attempt plus two feedback retries.
	assert.Equal(t, 3, llm.calls)
}

func TestPlan_LLMErrorPropagates(t *testing.T) {
	boom := errors.New("gemini unavailable")
	llm := &scriptedLLM{errs: []error{boom}}

	_, err := NewPlanner(llm, 2).Plan(context.Background(), question, "2026-08-27")
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, llm.calls)
}

func TestPlan_DefaultsAsOfToToday(t *testing.T) {
	llm := &scriptedLLM{answers: []map[string]any{questionIntent(false)}}
	// Reuse the non-legal short circuit so the empty plan exposes as_of.
	intent := llm.answers[0]
	intent["explicit_refs"].(map[string]any)["articles"] = []any{"L1221-1"}
	intent["explicit_refs"].(map[string]any)["codes"] = []any{"code du travail"}

	result, err := NewPlanner(llm, 0).Plan(context.Background(), question, "")
	require.NoError(t, err)

	meta := result.ExtractionPlan["meta"].(map[string]any)
	asOf, _ := meta["as_of"].(string)
	require.Len(t, asOf, 10)
	assert.True(t, strings.Count(asOf, "-") == 2)
}

func TestNewPlanner_DefaultRetries(t *testing.T) {
	p := NewPlanner(&scriptedLLM{}, 0)
	assert.Equal(t, defaultMaxRetries, p.maxRetries)
}
