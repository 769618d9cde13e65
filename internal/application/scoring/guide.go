package scoring

import (
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

const (
	guideCityPoints     = 3
	guideProvincePoints = 2
	pointsPerLanguage   = 3
	expertiseBasePoints = 3
	expertiseMaxPoints  = 5
	genderPoints        = 1
	popularityMaxPoints = 2
	ratingMaxPoints     = 3
	priceMaxPoints      = 5
	experienceMaxPoints = 5
	originPoints        = 5

	neutralGuideRatingPoints = 1.5
	defaultPricePoints       = 2
	affordableBudgetShare    = 0.25
)

// GuideLocationPoints gives 3 for the requested city, 2 for the requested
// province and 0 otherwise or when no location was requested.
func GuideLocationPoints(guideCity, guideProvince, city, province string) float64 {
	city, province = normalize(city), normalize(province)
	if city != "" && normalize(guideCity) == city {
		return guideCityPoints
	}
	if province != "" && normalize(guideProvince) == province {
		return guideProvincePoints
	}
	return 0
}

// LanguagePoints gives 3 per distinct requested language the guide speaks.
func LanguagePoints(guideLanguages, requested []string) float64 {
	want := toSet(requested)
	matches := toSet(guideLanguages).intersectionSize(want)
	if matches > len(want) {
		matches = len(want)
	}
	return float64(pointsPerLanguage * matches)
}

// ExpertisePoints gives 3 for the first overlapping topic and 1 for each
// further one, up to 5.
func ExpertisePoints(guideExpertise, requested []string) float64 {
	want := toSet(requested)
	if len(want) == 0 {
		return 0
	}
	matches := toSet(guideExpertise).intersectionSize(want)
	if matches == 0 {
		return 0
	}
	return float64(min(expertiseBasePoints+matches-1, expertiseMaxPoints))
}

func GenderPoints(guideGender, preference string) float64 {
	if normalize(preference) != "" && equalFold(guideGender, preference) {
		return genderPoints
	}
	return 0
}

// PopularityPoints gives 2 at or above the pool's upper quartile and 1 at or above its median.
func PopularityPoints(bookings int, stats PoolStats) float64 {
	switch {
	case bookings >= stats.Q3Bookings:
		return 2
	case bookings >= stats.MedianBookings:
		return 1
	default:
		return 0
	}
}

// RatingPoints scales a 0..5 rating onto 0..3; an absent rating is neutral.
func RatingPoints(rating *float64) float64 {
	if rating == nil {
		return neutralGuideRatingPoints
	}
	return clamp(*rating/5, 0, 1) * ratingMaxPoints
}

// PricePoints rewards cheaper guides: a base of 3 at budget_min falling to 1
// at budget_max, plus 2 in the cheapest quarter of the budget. Unknown prices
// and degenerate budgets get a flat 2.
func PricePoints(price, budgetMin, budgetMax float64) float64 {
	width := budgetMax - budgetMin
	if price <= 0 || width <= 0 {
		return defaultPricePoints
	}
	ratio := (price - budgetMin) / width
	points := clamp(3-2*ratio, 1, 3)
	if price <= budgetMin+width*affordableBudgetShare {
		points += 2
	}
	return points
}

// GuideMaxPoints is the normalization denominator for a query.
func GuideMaxPoints(q entities.GuideQuery) float64 {
	total := 0
	switch {
	case normalize(q.City) != "":
		total += guideCityPoints
	case normalize(q.Province) != "":
		total += guideProvincePoints
	}
	total += pointsPerLanguage * len(toSet(q.Languages))
	if len(toSet(q.Expertise)) > 0 {
		total += expertiseMaxPoints
	}
	if normalize(q.GenderPreference) != "" {
		total += genderPoints
	}
	total += popularityMaxPoints + ratingMaxPoints + priceMaxPoints + experienceMaxPoints + originPoints
	return float64(total)
}

// ScoreGuide computes every guide point category for one candidate.
func ScoreGuide(g *entities.Guide, q entities.GuideQuery, stats PoolStats) GuideComponents {
	var c GuideComponents
	c.Points[GuideLocation] = GuideLocationPoints(g.City, g.Province, q.City, q.Province)
	c.Points[GuideLanguages] = LanguagePoints(g.Languages, q.Languages)
	c.Points[GuideExpertise] = ExpertisePoints(g.Expertise, q.Expertise)
	c.Points[GuideGender] = GenderPoints(g.Gender, q.GenderPreference)
	c.Points[GuidePopularity] = PopularityPoints(g.PriorBookings, stats)
	c.Points[GuideRating] = RatingPoints(g.Rating)
	c.Points[GuidePrice] = PricePoints(g.Price, q.BudgetMin, q.BudgetMax)
	c.Points[GuideExperience] = ExperiencePoints(g.Experience)
	if g.Origin.IsLive() {
		c.Points[GuideOrigin] = originPoints
	}

	for _, p := range c.Points {
		c.RawTotal += p
	}
	c.MaxPoints = GuideMaxPoints(q)
	return c
}

// Normalize converts the raw point total into a score in [0,1].
func (c GuideComponents) Normalize() float64 {
	if c.MaxPoints <= 0 {
		return 0
	}
	return clamp(c.RawTotal/c.MaxPoints, 0, 1)
}
