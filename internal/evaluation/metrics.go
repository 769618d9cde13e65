package evaluation

import (
	"math"
	"sort"
)

// RecallAtK computes Recall@K: the fraction of relevant items found in the top-K retrieved results.
// Returns 0.0 if relevant is empty.
func RecallAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	relevantSet := make(map[string]struct{}, len(relevant))
	for _, r := range relevant {
		relevantSet[r] = struct{}{}
	}

	topK := retrieved
	if k < len(topK) {
		topK = topK[:k]
	}

	found := 0
	for _, r := range topK {
		if _, ok := relevantSet[r]; ok {
			found++
		}
	}

	return float64(found) / float64(len(relevant))
}

// MRRAtK computes Mean Reciprocal Rank at K: the reciprocal of the rank of the first relevant item
// in the top-K retrieved results. Returns 0.0 if no relevant item is found in top-K.
func MRRAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 || len(retrieved) == 0 {
		return 0.0
	}

	relevantSet := make(map[string]struct{}, len(relevant))
	for _, r := range relevant {
		relevantSet[r] = struct{}{}
	}

	topK := retrieved
	if k < len(topK) {
		topK = topK[:k]
	}

	for i, r := range topK {
		if _, ok := relevantSet[r]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}

// PrecisionAtK computes the fraction of the top-K slots holding a relevant item.
// The denominator is K even when fewer than K items were retrieved.
func PrecisionAtK(relevant, retrieved []string, k int) float64 {
	if k <= 0 || len(retrieved) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	found := 0
	for _, r := range truncate(retrieved, k) {
		if _, ok := relevantSet[r]; ok {
			found++
		}
	}

	return float64(found) / float64(k)
}

// NDCGAtK computes Normalized Discounted Cumulative Gain over graded relevance.
// The ideal ordering is taken over every graded item, not only the retrieved ones.
func NDCGAtK(retrieved []string, relevance map[string]float64, k int) float64 {
	if k <= 0 || len(retrieved) == 0 {
		return 0.0
	}

	dcg := 0.0
	for i, id := range truncate(retrieved, k) {
		dcg += relevance[id] / math.Log2(float64(i+2))
	}

	ideal := make([]float64, 0, len(relevance))
	for _, rel := range relevance {
		ideal = append(ideal, rel)
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(ideal)))

	idcg := 0.0
	for i, rel := range ideal {
		if i >= k {
			break
		}
		idcg += rel / math.Log2(float64(i+2))
	}

	if idcg == 0 {
		return 0.0
	}
	return dcg / idcg
}

// AveragePrecision averages precision at each rank holding a relevant item,
// divided by the total number of relevant items.
func AveragePrecision(relevant, retrieved []string) float64 {
	if len(relevant) == 0 || len(retrieved) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	hits := 0
	sum := 0.0
	for i, r := range retrieved {
		if _, ok := relevantSet[r]; ok {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}

	return sum / float64(len(relevantSet))
}

// Coverage is the fraction of the catalog recommended at least once.
func Coverage(recommended [][]string, catalogSize int) float64 {
	if catalogSize <= 0 {
		return 0.0
	}

	seen := make(map[string]struct{})
	for _, ids := range recommended {
		for _, id := range ids {
			seen[id] = struct{}{}
		}
	}

	return float64(len(seen)) / float64(catalogSize)
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, it := range items {
		set[it] = struct{}{}
	}
	return set
}

func truncate(items []string, k int) []string {
	if k < len(items) {
		return items[:k]
	}
	return items
}
