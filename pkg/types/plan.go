// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LockedRefs holds legal references extracted deterministically from the
// question text before any LLM call. The model must copy them verbatim and
// may not invent new ones.
type LockedRefs struct {
	Articles []string `json:"articles"`
	Codes    []string `json:"codes"`
	Laws     []string `json:"laws"`
	Dates    []string `json:"dates"`
}

// PlanResult is the output of the full intent→plan pipeline.
type PlanResult struct {
	OK             bool           `json:"ok"`
	LockedRefs     LockedRefs     `json:"locked_refs"`
	LegalIntent    map[string]any `json:"legal_intent"`
	ExtractionPlan map[string]any `json:"extraction_plan"`
	Warnings       []string       `json:"warnings"`
}
