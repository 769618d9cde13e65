package scoring

import (
	"sort"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

// PoolStats holds the pool-relative statistics computed once per run from the
// filtered pool, before any candidate is scored.
type PoolStats struct {
	MaxBookings    int
	MedianBookings int
	Q3Bookings     int
}

func newPoolStats(bookings []int) PoolStats {
	if len(bookings) == 0 {
		return PoolStats{}
	}
	sorted := make([]int, len(bookings))
	copy(sorted, bookings)
	sort.Ints(sorted)

	n := len(sorted)
	q3 := int(float64(n) * 0.75)
	if q3 >= n {
		q3 = n - 1
	}
	return PoolStats{
		MaxBookings:    sorted[n-1],
		MedianBookings: sorted[n/2],
		Q3Bookings:     sorted[q3],
	}
}

func AccommodationPoolStats(pool []*entities.Accommodation) PoolStats {
	bookings := make([]int, 0, len(pool))
	for _, a := range pool {
		bookings = append(bookings, a.PriorBookings)
	}
	return newPoolStats(bookings)
}

func GuidePoolStats(pool []*entities.Guide) PoolStats {
	bookings := make([]int, 0, len(pool))
	for _, g := range pool {
		bookings = append(bookings, g.PriorBookings)
	}
	return newPoolStats(bookings)
}
