// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResolvedArticle is the terminal artifact of a successful resolution: one
// code+article(+date) hint matched to exactly one Legifrance identifier and
// its content.
type ResolvedArticle struct {
	// Source names the fund the article was resolved in (e.g. "CODE").
	Source string `json:"source" yaml:"source"`

	// LegiartiID is the canonical article identifier (e.g.
	// "LEGIARTI000006900783").
	LegiartiID string `json:"legiarti_id" yaml:"legiarti_id"`

	// Title is the human-readable text title when one could be extracted
	// from the fetch payload.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// ArticleNum is the normalized article number (e.g. "L1221-1").
	ArticleNum string `json:"article" yaml:"article"`

	// DateVersion is the caller's as-of date hint ("YYYY-MM-DD"), not a
	// version date resolved by the API.
	DateVersion string `json:"date_version,omitempty" yaml:"date_version,omitempty"`

	// Raw is the unmodified getArticle payload, retained for caller
	// inspection.
	Raw map[string]any `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// Candidate is one entry of an ambiguous result set.
type Candidate struct {
	ID string `json:"id" yaml:"id"`
}
