package scoring

import "strings"

type stringSet map[string]struct{}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// toSet lowercases and trims items, dropping blanks.
func toSet(items []string) stringSet {
	set := make(stringSet, len(items))
	for _, item := range items {
		if n := normalize(item); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func (s stringSet) has(item string) bool {
	_, ok := s[normalize(item)]
	return ok
}

func (s stringSet) intersectionSize(other stringSet) int {
	n := 0
	for k := range s {
		if _, ok := other[k]; ok {
			n++
		}
	}
	return n
}

func (s stringSet) subsetOf(other stringSet) bool {
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// Jaccard returns |a∩b| / |a∪b| over case-insensitive sets, or 0 when either side is empty.
func Jaccard(a, b []string) float64 {
	return jaccard(toSet(a), toSet(b))
}

func jaccard(a, b stringSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := a.intersectionSize(b)
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// matching returns the entries of items (in their order, first spelling kept)
// whose normalized form is in want.
func matching(items []string, want stringSet) []string {
	var out []string
	seen := make(stringSet)
	for _, item := range items {
		n := normalize(item)
		if n == "" {
			continue
		}
		if _, ok := want[n]; !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, strings.TrimSpace(item))
	}
	return out
}

func equalFold(a, b string) bool {
	return normalize(a) == normalize(b)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
