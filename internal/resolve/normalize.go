// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve turns a code+article(+date) hint into a canonical
// Legifrance article identifier and its content, via the two-step
// search→getArticle protocol.
package resolve

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	// hyphenSpacing compacts spaces around hyphens: "1221 - 1" → "1221-1".
	hyphenSpacing = regexp.MustCompile(`\s*-\s*`)

	// letterGap glues a leading letter to the following digits:
	// "L 1221" → "L1221". Keeps meaningful spaces elsewhere ("6 nonies").
	letterGap = regexp.MustCompile(`^([A-Za-z])\s+(\d)`)

	multiSpace = regexp.MustCompile(`\s+`)
)

// NormalizeArticleNum makes an article number search-friendly:
// "L 1221-1" → "L1221-1", "3 - 1" → "3-1", "6 nonies" stays "6 nonies".
// Empty input normalizes to "".
func NormalizeArticleNum(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	s = hyphenSpacing.ReplaceAllString(s, "-")
	s = letterGap.ReplaceAllString(s, "$1$2")
	s = multiSpace.ReplaceAllString(s, " ")
	return s
}

// NormalizeCodeTitle trims and collapses whitespace without otherwise
// touching the title; code names are matched exactly by the API.
func NormalizeCodeTitle(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	return multiSpace.ReplaceAllString(s, " ")
}

// ISODateToMillis converts a "YYYY-MM-DD" date to epoch milliseconds at
// UTC midnight. "YYYY/MM/DD" is tolerated.
func ISODateToMillis(dateStr string) (int64, error) {
	s := strings.ReplaceAll(strings.TrimSpace(dateStr), "/", "-")
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return 0, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", dateStr)
	}
	return t.UnixMilli(), nil
}
