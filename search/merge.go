package search

import (
	"slices"
	"strings"

	"github.com/poiesic/medcite/core"
)

// relevanceFromDistance converts a semantic distance in [0,1] to a relevance
// score. Out-of-range distances are clamped first.
func relevanceFromDistance(distance float32) float32 {
	if distance < 0 {
		distance = 0
	}
	if distance > 1 {
		distance = 1
	}
	return 1 - distance
}

// merge combines structured and semantic hits into one ranked list, keyed by
// URL. A record found by both mechanisms keeps the higher relevance and is
// marked accordingly. Ordering is relevance descending, then retrieval time
// descending, then URL ascending; truncation to limit happens only after the
// full merge so a hit from one index cannot displace a better one from the
// other.
func merge(structured []*core.Evidence, semantic []*core.SemanticMatch, baseline float32, limit int) []*core.RankedResult {
	byURL := make(map[string]*core.RankedResult)
	var order []string

	for _, ev := range structured {
		if _, exists := byURL[ev.URL]; exists {
			continue
		}
		byURL[ev.URL] = &core.RankedResult{
			Evidence:  ev,
			Relevance: baseline,
			Origin:    core.OriginStructured,
		}
		order = append(order, ev.URL)
	}

	for _, match := range semantic {
		relevance := relevanceFromDistance(match.Distance)
		existing, exists := byURL[match.Evidence.URL]
		if !exists {
			byURL[match.Evidence.URL] = &core.RankedResult{
				Evidence:  match.Evidence,
				Relevance: relevance,
				Origin:    core.OriginSemantic,
			}
			order = append(order, match.Evidence.URL)
			continue
		}
		if relevance > existing.Relevance {
			existing.Relevance = relevance
		}
		existing.Origin = core.OriginBoth
	}

	results := make([]*core.RankedResult, 0, len(order))
	for _, url := range order {
		results = append(results, byURL[url])
	}

	slices.SortFunc(results, func(a, b *core.RankedResult) int {
		if a.Relevance != b.Relevance {
			if a.Relevance > b.Relevance {
				return -1
			}
			return 1
		}
		if !a.Evidence.RetrievedAt.Equal(b.Evidence.RetrievedAt) {
			if a.Evidence.RetrievedAt.After(b.Evidence.RetrievedAt) {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Evidence.URL, b.Evidence.URL)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
