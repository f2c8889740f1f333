// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package plan

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// ValidationResult is the outcome of checking one model answer. Errors
// force a retry with feedback; warnings are collected and surfaced.
type ValidationResult struct {
	OK       bool
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// ValidateLegalIntent checks the shape of a LegalIntent answer and that
// the locked references were copied verbatim, with nothing invented.
func ValidateLegalIntent(obj map[string]any, locked types.LockedRefs) ValidationResult {
	var res ValidationResult

	intent, ok := obj["intent"].(map[string]any)
	if !ok {
		res.errorf("missing 'intent' object")
	} else if _, ok := intent["is_legal"].(bool); !ok {
		res.errorf("'intent.is_legal' must be a boolean")
	}

	refs, ok := obj["explicit_refs"].(map[string]any)
	if !ok {
		res.errorf("missing 'explicit_refs' object")
	} else {
		checkLockedList(&res, refs, "articles", locked.Articles)
		checkLockedList(&res, refs, "codes", locked.Codes)
		checkLockedList(&res, refs, "laws", locked.Laws)
		checkLockedList(&res, refs, "dates", locked.Dates)
	}

	if _, ok := obj["missing_information"].([]any); !ok {
		res.warnf("'missing_information' absent or not a list")
	}

	res.OK = len(res.Errors) == 0
	return res
}

// checkLockedList verifies one explicit_refs list equals the locked values
// as a set: additions are invented references, omissions are drops.
func checkLockedList(res *ValidationResult, refs map[string]any, key string, locked []string) {
	raw, ok := refs[key].([]any)
	if !ok {
		if len(locked) > 0 {
			res.errorf("'explicit_refs.%s' missing; expected %v", key, locked)
		}
		return
	}

	got := make([]string, 0, len(raw))
	for _, v := range raw {
		s, ok := v.(string)
		if !ok {
			res.errorf("'explicit_refs.%s' contains a non-string entry", key)
			return
		}
		got = append(got, s)
	}

	if !sameStringSet(got, locked) {
		res.errorf("'explicit_refs.%s' must copy the locked values %v verbatim, got %v", key, locked, got)
	}
}

func sameStringSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}

// ValidateExtractionPlan checks the shape of an ExtractionPlan answer
// against the intent it was derived from and the pinned as-of date.
func ValidateExtractionPlan(obj map[string]any, asOf string) ValidationResult {
	var res ValidationResult

	if v, ok := obj["version"].(string); !ok || v == "" {
		res.errorf("missing 'version' string")
	}

	meta, ok := obj["meta"].(map[string]any)
	if !ok {
		res.errorf("missing 'meta' object")
	} else {
		if got, _ := meta["as_of"].(string); got != asOf {
			res.errorf("'meta.as_of' must be %q, got %q", asOf, got)
		}
		if j, _ := meta["jurisdiction"].(string); j != "FR" {
			res.warnf("'meta.jurisdiction' is %q, expected FR", j)
		}
	}

	steps, ok := obj["plan"].([]any)
	if !ok {
		res.errorf("missing 'plan' list")
	} else {
		for i, s := range steps {
			step, ok := s.(map[string]any)
			if !ok {
				res.errorf("plan step %d is not an object", i)
				continue
			}
			if action, _ := step["action"].(string); action == "" {
				res.errorf("plan step %d has no 'action'", i)
			}
		}
	}

	constraints, ok := obj["constraints"].(map[string]any)
	if !ok {
		res.errorf("missing 'constraints' object")
	} else if cite, _ := constraints["must_cite_sources"].(bool); !cite {
		res.warnf("'constraints.must_cite_sources' should be true")
	}

	res.OK = len(res.Errors) == 0
	return res
}

// BuildIntentFeedback turns validation errors into a corrective system
// prompt suffix for the next attempt.
func BuildIntentFeedback(errs []string) string {
	return "Your previous answer was rejected:\n- " + strings.Join(errs, "\n- ") +
		"\nFix every point and answer again with ONLY the JSON object."
}

// BuildPlanFeedback is the ExtractionPlan counterpart of BuildIntentFeedback.
func BuildPlanFeedback(errs []string) string {
	return "Your previous plan was rejected:\n- " + strings.Join(errs, "\n- ") +
		"\nFix every point and answer again with ONLY the JSON object."
}
