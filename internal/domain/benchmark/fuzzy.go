package benchmark

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// RankedReference is a catalog entry scored against a query string. Lower
// distance means a closer match.
type RankedReference struct {
	Reference PriceReference
	Distance  int
}

// RankReferences orders catalog entries by fuzzy similarity to the query.
// The detector itself keeps the strict substring lookup; this ranking exists
// for reviewer tooling that wants "did you mean" candidates when an expense
// has no exact catalog hit.
func RankReferences(query string, refs []PriceReference, limit int) []RankedReference {
	names := make([]string, len(refs))
	for i, ref := range refs {
		names[i] = ref.ItemName
	}

	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)

	out := make([]RankedReference, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, RankedReference{
			Reference: refs[r.OriginalIndex],
			Distance:  r.Distance,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
