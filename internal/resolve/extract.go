// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

// legiartiPrefix marks canonical article identifiers; anything else in a
// search response is ignored.
const legiartiPrefix = "LEGIARTI"

// Search responses vary in shape across funds and pagination modes, so
// identifier and title extraction are decision tables: ordered strategies
// tried in sequence, each tolerant of missing or mistyped fields.

// idStrategy collects candidate identifiers from one search result entry.
type idStrategy func(result map[string]any) []string

var idStrategies = []idStrategy{
	idsFromArticleList,
	idFromResult,
}

// idsFromArticleList reads the nested "articles" sub-list.
func idsFromArticleList(result map[string]any) []string {
	arts, ok := result["articles"].([]any)
	if !ok {
		return nil
	}
	var ids []string
	for _, a := range arts {
		entry, ok := a.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := entry["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// idFromResult reads a direct "id" field on the result itself.
func idFromResult(result map[string]any) []string {
	if id, ok := result["id"].(string); ok {
		return []string{id}
	}
	return nil
}

// ExtractArticleIDs scans a search response for LEGIARTI identifiers. A
// missing or non-list "results" field yields an empty set. Duplicates are
// removed preserving first-seen order.
func ExtractArticleIDs(resp map[string]any) []string {
	results, ok := resp["results"].([]any)
	if !ok {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, r := range results {
		entry, ok := r.(map[string]any)
		if !ok {
			continue
		}
		for _, strategy := range idStrategies {
			for _, id := range strategy(entry) {
				if !hasLegiartiPrefix(id) || seen[id] {
					continue
				}
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func hasLegiartiPrefix(id string) bool {
	return len(id) >= len(legiartiPrefix) && id[:len(legiartiPrefix)] == legiartiPrefix
}

// titleListKeys are probed in order; the first key holding a non-empty
// list settles the lookup even when its entry carries no usable title.
var titleListKeys = []string{"textTitles", "titles"}

// titleFields are read from the first list entry, in order.
var titleFields = []string{"title", "titreLong"}

// ExtractTitle best-effort extracts a human-readable title from a
// getArticle payload. The article object may sit under an "article" key or
// the payload may already be article-shaped. Returns "" when no known
// shape matches.
func ExtractTitle(resp map[string]any) string {
	if resp == nil {
		return ""
	}
	art, ok := resp["article"].(map[string]any)
	if !ok {
		art = resp
	}

	for _, key := range titleListKeys {
		list, ok := art[key].([]any)
		if !ok || len(list) == 0 {
			continue
		}
		first, ok := list[0].(map[string]any)
		if !ok {
			return ""
		}
		for _, field := range titleFields {
			if title, ok := first[field].(string); ok && title != "" {
				return title
			}
		}
		return ""
	}
	return ""
}
