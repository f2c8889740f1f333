// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package plan runs the two-call LLM pipeline that turns a free-text legal
// question into a validated LegalIntent and ExtractionPlan. References
// detected deterministically in the question are locked before the first
// call; the model must copy them and may not invent new ones.
package plan

import (
	"regexp"
	"strings"

	"github.com/pdiddy/legifrance-proxy/internal/resolve"
	"github.com/pdiddy/legifrance-proxy/pkg/types"
)

var (
	// articleRef matches "L1221-1", "L. 1221-1", "R 312-4", "article 9".
	articleRef = regexp.MustCompile(`(?i)\b([LRD])\.?\s*(\d+(?:-\d+)+)\b|\barticles?\s+(\d+(?:-\d+)*)\b`)

	// codeRef matches French code names: "code du travail", "code de la
	// consommation", "code de l'environnement". The continuation is greedy,
	// so the match is trimmed back to the code name by trimCodeName.
	codeRef = regexp.MustCompile(`(?i)\bcode\s+(?:du|de\s+la|de\s+l'|des|de)\s+[\p{L}'-]+(?:\s+[\p{L}'-]+)*`)

	// lawRef matches numbered laws: "loi n° 78-17", "loi 2016-1321".
	lawRef = regexp.MustCompile(`(?i)\bloi\s+n?°?\s*(\d{2,4}-\d+)\b`)

	// dateRef matches ISO-style dates with - or / separators.
	dateRef = regexp.MustCompile(`\b(\d{4})[-/](\d{2})[-/](\d{2})\b`)
)

// ExtractExplicitRefs scans the question for legal references the model is
// not allowed to alter. Values are normalized (article numbers through the
// resolver's normalizer, dates to YYYY-MM-DD) and deduplicated preserving
// first-seen order.
func ExtractExplicitRefs(question string) types.LockedRefs {
	refs := types.LockedRefs{
		Articles: []string{},
		Codes:    []string{},
		Laws:     []string{},
		Dates:    []string{},
	}

	for _, m := range articleRef.FindAllStringSubmatch(question, -1) {
		var raw string
		if m[1] != "" {
			raw = m[1] + m[2]
		} else {
			raw = m[3]
		}
		refs.Articles = appendUnique(refs.Articles, resolve.NormalizeArticleNum(strings.ToUpper(raw)))
	}

	for _, m := range codeRef.FindAllString(question, -1) {
		refs.Codes = appendUnique(refs.Codes, resolve.NormalizeCodeTitle(trimCodeName(strings.ToLower(m))))
	}

	for _, m := range lawRef.FindAllStringSubmatch(question, -1) {
		refs.Laws = appendUnique(refs.Laws, m[1])
	}

	for _, m := range dateRef.FindAllStringSubmatch(question, -1) {
		refs.Dates = appendUnique(refs.Dates, m[1]+"-"+m[2]+"-"+m[3])
	}

	return refs
}

// codeNameStopWords are words that follow a code name in a sentence but
// never belong to one: verbs, interrogatives, conjunctions. They terminate
// the greedy codeRef match.
var codeNameStopWords = map[string]bool{
	"impose": true, "interdit": true, "oblige": true, "permet": true,
	"prévoit": true, "exige": true, "autorise": true, "définit": true,
	"encadre": true, "concerne": true, "dit": true, "dispose": true,
	"est": true, "sont": true, "a": true, "ont": true,
	"s'applique": true, "applique": true,
	"que": true, "qui": true, "quoi": true, "dont": true, "où": true,
	"et": true, "ou": true, "mais": true, "donc": true, "alors": true,
	"puis": true, "encore": true, "si": true,
	"pour": true, "dans": true, "sur": true, "avec": true, "sans": true,
	"selon": true, "depuis": true, "avant": true, "après": true,
}

// trimCodeName cuts a greedy codeRef match back at the first word that
// cannot be part of a code name. The first two words ("code" plus the
// leading particle) are always kept.
func trimCodeName(match string) string {
	words := strings.Fields(match)
	for i := 2; i < len(words); i++ {
		if codeNameStopWords[words[i]] {
			return strings.Join(words[:i], " ")
		}
	}
	return match
}

func appendUnique(list []string, v string) []string {
	if v == "" {
		return list
	}
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
