package scoring

import (
	"math"
	"sort"
)

// Scored pairs a candidate with its aggregate score and component breakdown.
type Scored[T any, B any] struct {
	Candidate  T
	Score      float64
	Components B
}

// TieBreak extracts the secondary sort keys of a candidate.
type TieBreak[T any] func(T) (rating float64, bookings int)

// Rank sorts items in place by score, then rating, then prior bookings, all
// descending. Items equal on every key keep their input order.
func Rank[T, B any](items []Scored[T, B], tieBreak TieBreak[T]) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		ri, bi := tieBreak(items[i].Candidate)
		rj, bj := tieBreak(items[j].Candidate)
		if ri != rj {
			return ri > rj
		}
		return bi > bj
	})
}

// TopK returns at most k leading items.
func TopK[T, B any](items []Scored[T, B], k int) []Scored[T, B] {
	if k < 0 {
		k = 0
	}
	if len(items) > k {
		return items[:k]
	}
	return items
}

// RoundScore rounds to 3 decimal places.
func RoundScore(score float64) float64 {
	return math.Round(score*1000) / 1000
}

func ratingOrZero(r *float64) float64 {
	if r == nil {
		return 0
	}
	return *r
}
