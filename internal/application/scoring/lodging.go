package scoring

import (
	"math"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

// commonlyDesiredAmenities are always added to the amenity target set.
var commonlyDesiredAmenities = []string{"wifi", "pool", "parking"}

const (
	locationCityMatch     = 1.0
	locationProvinceMatch = 0.6
	locationNoPreference  = 0.5
	locationElsewhere     = 0.15

	neutralLodgingRating = 0.5

	// pricePenaltyPerUnit is the score lost per currency unit between disjoint ranges.
	pricePenaltyPerUnit = 0.001
)

// StyleMatch is 1 when the requested style is one of the candidate's styles.
func StyleMatch(style string, candidateStyles []string) float64 {
	if normalize(style) == "" {
		return 0
	}
	if toSet(candidateStyles).has(style) {
		return 1
	}
	return 0
}

// PriceAlignment scores how well a candidate range sits inside the budget.
// Overlapping ranges score overlap/budget width (1 for a zero-width budget);
// disjoint ranges lose pricePenaltyPerUnit per unit of distance. An inverted
// budget scores 0.
func PriceAlignment(budgetMin, budgetMax, priceMin, priceMax float64) float64 {
	if budgetMin > budgetMax {
		return 0
	}
	overlapMin := math.Max(budgetMin, priceMin)
	overlapMax := math.Min(budgetMax, priceMax)

	if overlapMax >= overlapMin {
		width := budgetMax - budgetMin
		if width <= 0 {
			return 1
		}
		return math.Min(1, (overlapMax-overlapMin)/width)
	}

	var distance float64
	if priceMax < budgetMin {
		distance = budgetMin - priceMax
	} else {
		distance = priceMin - budgetMax
	}
	return clamp(1-distance*pricePenaltyPerUnit, 0, 1)
}

// AmenityMatch is the Jaccard similarity between the candidate's amenities and
// the required amenities plus the commonly desired ones.
func AmenityMatch(required, amenities []string) float64 {
	target := toSet(required)
	for _, a := range commonlyDesiredAmenities {
		target[a] = struct{}{}
	}
	return jaccard(target, toSet(amenities))
}

// LocationPreference returns the tiered lodging location score.
func LocationPreference(candidateCity, candidateProvince, city, province string) float64 {
	city, province = normalize(city), normalize(province)
	if city == "" && province == "" {
		return locationNoPreference
	}
	if city != "" && normalize(candidateCity) == city {
		return locationCityMatch
	}
	if province != "" && normalize(candidateProvince) == province {
		return locationProvinceMatch
	}
	return locationElsewhere
}

func CapacityFit(capacity, groupSize int) float64 {
	if capacity >= groupSize {
		return 1
	}
	return 0
}

// RatingScore maps a 0..5 rating onto [0,1]; an absent rating is neutral.
func RatingScore(rating *float64) float64 {
	if rating == nil {
		return neutralLodgingRating
	}
	return clamp(*rating/5, 0, 1)
}

// PopularityScore is log-scaled against the most-booked candidate in the filtered pool.
func PopularityScore(bookings, maxBookings int) float64 {
	if maxBookings <= 0 {
		return 0
	}
	if bookings < 0 {
		bookings = 0
	}
	return clamp(math.Log1p(float64(bookings))/math.Log1p(float64(maxBookings)), 0, 1)
}

func OriginBonus(origin entities.Origin) float64 {
	if origin.IsLive() {
		return 1
	}
	return 0
}

// ScoreAccommodation computes every lodging component for one candidate.
func ScoreAccommodation(a *entities.Accommodation, q entities.AccommodationQuery, stats PoolStats) LodgingComponents {
	var c LodgingComponents
	c.Values[LodgingInterests] = Jaccard(q.Interests, a.Interests)
	c.Values[LodgingStyle] = StyleMatch(q.TravelStyle, a.TravelStyles)
	c.Values[LodgingPrice] = PriceAlignment(q.BudgetMin, q.BudgetMax, a.PriceRangeMin, a.PriceRangeMax)
	c.Values[LodgingAmenities] = AmenityMatch(q.RequiredAmenities, a.Amenities)
	c.Values[LodgingLocation] = LocationPreference(a.City, a.Province, q.City, q.Province)
	c.Values[LodgingCapacity] = CapacityFit(a.Capacity, q.GroupSize)
	c.Values[LodgingRating] = RatingScore(a.Rating)
	c.Values[LodgingPopularity] = PopularityScore(a.PriorBookings, stats.MaxBookings)
	c.Values[LodgingOrigin] = OriginBonus(a.Origin)
	return c
}
