// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

func validIntent(articles ...string) map[string]any {
	arts := make([]any, len(articles))
	for i, a := range articles {
		arts[i] = a
	}
	return map[string]any{
		"intent": map[string]any{"is_legal": true},
		"explicit_refs": map[string]any{
			"articles": arts,
			"codes":    []any{},
			"laws":     []any{},
			"dates":    []any{},
		},
		"missing_information": []any{},
	}
}

func TestValidateLegalIntent_OK(t *testing.T) {
	locked := types.LockedRefs{Articles: []string{"L1221-1"}}
	res := ValidateLegalIntent(validIntent("L1221-1"), locked)
	assert.True(t, res.OK)
	assert.Empty(t, res.Errors)
}

func TestValidateLegalIntent_Errors(t *testing.T) {
	locked := types.LockedRefs{Articles: []string{"L1221-1"}}

	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{
		{
			name:    "missing intent",
			mutate:  func(obj map[string]any) { delete(obj, "intent") },
			wantErr: "missing 'intent' object",
		},
		{
			name: "is_legal not boolean",
			mutate: func(obj map[string]any) {
				obj["intent"] = map[string]any{"is_legal": "yes"}
			},
			wantErr: "'intent.is_legal' must be a boolean",
		},
		{
			name:    "missing explicit_refs",
			mutate:  func(obj map[string]any) { delete(obj, "explicit_refs") },
			wantErr: "missing 'explicit_refs' object",
		},
		{
			name: "invented article",
			mutate: func(obj map[string]any) {
				obj["explicit_refs"].(map[string]any)["articles"] = []any{"L1221-1", "L1331-2"}
			},
			wantErr: "'explicit_refs.articles'",
		},
		{
			name: "dropped article",
			mutate: func(obj map[string]any) {
				obj["explicit_refs"].(map[string]any)["articles"] = []any{}
			},
			wantErr: "'explicit_refs.articles'",
		},
		{
			name: "non-string entry",
			mutate: func(obj map[string]any) {
				obj["explicit_refs"].(map[string]any)["articles"] = []any{42}
			},
			wantErr: "non-string entry",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := validIntent("L1221-1")
			tt.mutate(obj)
			res := ValidateLegalIntent(obj, locked)
			assert.False(t, res.OK)
			require.NotEmpty(t, res.Errors)
			assert.Contains(t, res.Errors[0], tt.wantErr)
		})
	}
}

func TestValidateLegalIntent_OrderInsensitive(t *testing.T) {
	locked := types.LockedRefs{Articles: []string{"L1221-1", "1382"}}
	obj := validIntent("1382", "L1221-1")
	res := ValidateLegalIntent(obj, locked)
	assert.True(t, res.OK)
}

func TestValidateLegalIntent_MissingInfoWarns(t *testing.T) {
	obj := validIntent()
	delete(obj, "missing_information")
	res := ValidateLegalIntent(obj, types.LockedRefs{})
	assert.True(t, res.OK)
	assert.NotEmpty(t, res.Warnings)
}

func validExtractionPlan(asOf string) map[string]any {
	return map[string]any{
		"version": "1.0",
		"meta": map[string]any{
			"user_question": "q",
			"as_of":         asOf,
			"jurisdiction":  "FR",
		},
		"plan": []any{
			map[string]any{"action": "resolve_article", "code": "Code du travail", "article": "L1221-1"},
		},
		"constraints": map[string]any{
			"max_sources":       float64(12),
			"must_cite_sources": true,
		},
	}
}

func TestValidateExtractionPlan_OK(t *testing.T) {
	res := ValidateExtractionPlan(validExtractionPlan("2026-08-27"), "2026-08-27")
	assert.True(t, res.OK)
	assert.Empty(t, res.Errors)
	assert.Empty(t, res.Warnings)
}

func TestValidateExtractionPlan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{
		{
			name:    "missing version",
			mutate:  func(obj map[string]any) { delete(obj, "version") },
			wantErr: "missing 'version'",
		},
		{
			name:    "missing meta",
			mutate:  func(obj map[string]any) { delete(obj, "meta") },
			wantErr: "missing 'meta' object",
		},
		{
			name: "wrong as_of",
			mutate: func(obj map[string]any) {
				obj["meta"].(map[string]any)["as_of"] = "2001-01-01"
			},
			wantErr: "'meta.as_of'",
		},
		{
			name:    "missing plan",
			mutate:  func(obj map[string]any) { delete(obj, "plan") },
			wantErr: "missing 'plan' list",
		},
		{
			name: "step without action",
			mutate: func(obj map[string]any) {
				obj["plan"] = []any{map[string]any{"code": "Code civil"}}
			},
			wantErr: "has no 'action'",
		},
		{
			name:    "missing constraints",
			mutate:  func(obj map[string]any) { delete(obj, "constraints") },
			wantErr: "missing 'constraints' object",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj := validExtractionPlan("2026-08-27")
			tt.mutate(obj)
			res := ValidateExtractionPlan(obj, "2026-08-27")
			assert.False(t, res.OK)
			require.NotEmpty(t, res.Errors)
			assert.Contains(t, res.Errors[0], tt.wantErr)
		})
	}
}

func TestValidateExtractionPlan_Warnings(t *testing.T) {
	obj := validExtractionPlan("2026-08-27")
	obj["meta"].(map[string]any)["jurisdiction"] = "EU"
	obj["constraints"].(map[string]any)["must_cite_sources"] = false

	res := ValidateExtractionPlan(obj, "2026-08-27")
	assert.True(t, res.OK)
	assert.Len(t, res.Warnings, 2)
}

func TestBuildFeedback(t *testing.T) {
	fb := BuildIntentFeedback([]string{"missing 'intent' object", "bad refs"})
	assert.Contains(t, fb, "missing 'intent' object")
	assert.Contains(t, fb, "bad refs")
	assert.Contains(t, fb, "ONLY the JSON object")
}
