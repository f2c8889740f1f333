// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import (
	"context"
	"fmt"

	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

// API is the transport surface the engine needs. *piste.Client satisfies
// it; tests substitute fakes.
type API interface {
	Search(ctx context.Context, payload any) (map[string]any, error)
	GetArticle(ctx context.Context, id string) (map[string]any, error)
}

const (
	// maxUnambiguous is the candidate count up to which the first
	// identifier is taken as authoritative. A tunable precision/recall
	// knob: 2–3 near-ties favor forward progress over confirmation.
	maxUnambiguous = 3

	// maxCandidates caps the candidate list carried by an Ambiguous
	// outcome.
	maxCandidates = 10
)

// Outcome is the closed result of one resolution: exactly Resolved,
// NotFound, TooBroad, or Ambiguous. Faults (auth, network, remote API)
// travel as errors instead, never as outcomes.
type Outcome interface {
	Kind() string
	sealed()
}

// Resolved carries the terminal article artifact.
type Resolved struct {
	Article types.ResolvedArticle
}

// NotFound means the search yielded no matching identifier.
type NotFound struct {
	Message string
}

// TooBroad means the hints lacked the specificity to search at all.
type TooBroad struct {
	Message string
}

// Ambiguous means too many identifiers matched; Candidates (capped at 10,
// first-seen order) support caller-driven narrowing.
type Ambiguous struct {
	Message    string
	Candidates []types.Candidate
}

func (Resolved) Kind() string  { return "resolved" }
func (NotFound) Kind() string  { return "not_found" }
func (TooBroad) Kind() string  { return "too_broad" }
func (Ambiguous) Kind() string { return "ambiguous" }

func (Resolved) sealed()  {}
func (NotFound) sealed()  {}
func (TooBroad) sealed()  {}
func (Ambiguous) sealed() {}

// Resolver is the resolution engine. It holds no state of its own; all
// remote interaction goes through the injected API.
type Resolver struct {
	api API
}

func NewResolver(api API) *Resolver {
	return &Resolver{api: api}
}

// ResolveCodeArticle resolves a code+article(+date) hint.
//
// State machine: normalize; empty code title or article number is TooBroad
// before any network call; primary exact search, falling back once to a
// code-only query when the search call itself errors; identifier
// extraction; cardinality policy (0 NotFound, >3 Ambiguous, else first
// wins); getArticle fetch; result assembly. dateHint is optional
// "YYYY-MM-DD".
func (r *Resolver) ResolveCodeArticle(ctx context.Context, codeHint, articleHint, dateHint string) (Outcome, error) {
	codeTitle := NormalizeCodeTitle(codeHint)
	articleNum := NormalizeArticleNum(articleHint)

	if codeTitle == "" || articleNum == "" {
		return TooBroad{Message: "code hint or article hint missing"}, nil
	}

	var dateMillis int64
	if dateHint != "" {
		millis, err := ISODateToMillis(dateHint)
		if err != nil {
			return nil, err
		}
		dateMillis = millis
	}

	searchResp, err := r.api.Search(ctx, CodeArticleQuery(codeTitle, articleNum, dateMillis))
	if err != nil {
		// The exact NUM_ARTICLE+date combination can fail on the remote
		// side; broaden once before giving up.
		searchResp, err = r.api.Search(ctx, CodeOnlyQuery(codeTitle))
		if err != nil {
			return nil, err
		}
	}

	ids := ExtractArticleIDs(searchResp)

	if len(ids) == 0 {
		return NotFound{Message: fmt.Sprintf(
			"no article found for %q article %q (date=%s)", codeTitle, articleNum, orNone(dateHint),
		)}, nil
	}

	if len(ids) > maxUnambiguous {
		capped := ids
		if len(capped) > maxCandidates {
			capped = capped[:maxCandidates]
		}
		candidates := make([]types.Candidate, len(capped))
		for i, id := range capped {
			candidates[i] = types.Candidate{ID: id}
		}
		return Ambiguous{
			Message:    fmt.Sprintf("%d possible articles; narrow the code title or article number", len(ids)),
			Candidates: candidates,
		}, nil
	}

	legiartiID := ids[0]
	articleResp, err := r.api.GetArticle(ctx, legiartiID)
	if err != nil {
		return nil, err
	}

	return Resolved{Article: types.ResolvedArticle{
		Source:      "CODE",
		LegiartiID:  legiartiID,
		Title:       ExtractTitle(articleResp),
		ArticleNum:  articleNum,
		DateVersion: dateHint,
		Raw:         articleResp,
	}}, nil
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
