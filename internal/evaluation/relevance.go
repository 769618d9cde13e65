package evaluation

import "strings"

// RelevanceThreshold is the graded relevance above which an item counts as relevant.
const RelevanceThreshold = 0.4

// Relevance grades an item against a scenario: up to 0.5 for tag overlap,
// 0.3 for the expected province and up to 0.2 for a high rating. Capped at 1.
func Relevance(tags []string, province string, rating *float64, s Scenario) float64 {
	score := 0.0

	if len(s.ExpectedTags) > 0 {
		have := make(map[string]struct{}, len(tags))
		for _, t := range tags {
			have[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
		want := make(map[string]struct{}, len(s.ExpectedTags))
		for _, t := range s.ExpectedTags {
			want[strings.ToLower(strings.TrimSpace(t))] = struct{}{}
		}
		overlap := 0
		for t := range want {
			if _, ok := have[t]; ok {
				overlap++
			}
		}
		score += 0.5 * float64(overlap) / float64(len(want))
	}

	if s.ExpectedProvince != "" && strings.EqualFold(province, s.ExpectedProvince) {
		score += 0.3
	}

	if rating != nil {
		switch {
		case *rating >= 4.0:
			score += 0.2
		case *rating >= 3.5:
			score += 0.1
		}
	}

	if score > 1.0 {
		return 1.0
	}
	return score
}
