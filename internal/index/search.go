package index

import (
	"math"
	"sort"
)

// Result is one scored search hit.
type Result struct {
	Ref   string  `json:"ref"`
	Score float64 `json:"score"`
}

// Search analyzes query with the index's pipeline and returns matching
// refs scored by tf-idf with field-length normalization and per-field
// boosts. Results are ordered by score descending, then ref ascending,
// so the same query against the same index always ranks identically.
// limit <= 0 means no limit.
func Search(idx *Index, analyzer *Analyzer, query string, limit int) []Result {
	terms := analyzer.Terms(query)
	if len(terms) == 0 {
		return nil
	}

	total := len(idx.Refs)
	scores := make(map[string]float64)

	for _, term := range terms {
		byField, ok := idx.Postings[term]
		if !ok {
			continue
		}

		// Document frequency across all fields.
		matched := make(map[string]struct{})
		for _, byRef := range byField {
			for ref := range byRef {
				matched[ref] = struct{}{}
			}
		}
		df := len(matched)
		if df == 0 {
			continue
		}
		idf := math.Log(1 + float64(total)/float64(df))

		for field, byRef := range byField {
			boost := idx.Boosts.forField(field)
			for ref, tf := range byRef {
				length := idx.Lengths[field][ref]
				if length == 0 {
					continue
				}
				scores[ref] += boost * idf * float64(tf) / float64(length)
			}
		}
	}

	results := make([]Result, 0, len(scores))
	for ref, score := range scores {
		results = append(results, Result{Ref: ref, Score: score})
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Ref < results[j].Ref
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}
