package scoring

import (
	"fmt"
	"strings"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

// AmenityPolicy decides how a lodging request's required amenities are used.
type AmenityPolicy string

const (
	// AmenityPolicySoft feeds required amenities into the amenity similarity only.
	AmenityPolicySoft AmenityPolicy = "soft"
	// AmenityPolicyStrict additionally drops candidates missing any required amenity.
	AmenityPolicyStrict AmenityPolicy = "strict"
)

func ParseAmenityPolicy(s string) (AmenityPolicy, error) {
	switch AmenityPolicy(normalize(s)) {
	case "", AmenityPolicySoft:
		return AmenityPolicySoft, nil
	case AmenityPolicyStrict:
		return AmenityPolicyStrict, nil
	default:
		return "", apperrors.NewConfigurationError(fmt.Sprintf("unknown amenity policy %q", s))
	}
}

// FilterAccommodations applies the lodging hard rules and returns the
// survivors in their original order. The input slice is not modified.
func FilterAccommodations(pool []*entities.Accommodation, q entities.AccommodationQuery, policy AmenityPolicy) []*entities.Accommodation {
	// An inverted budget window admits no price.
	if q.BudgetMin > q.BudgetMax {
		return []*entities.Accommodation{}
	}

	var required stringSet
	if policy == AmenityPolicyStrict {
		required = toSet(q.RequiredAmenities)
	}
	lockedCity := lockedCity(q.City, q.CityOnly)
	wantType := accommodationTypeFilter(q.AccommodationType)

	out := make([]*entities.Accommodation, 0, len(pool))
	for _, a := range pool {
		if a == nil || !a.Available {
			continue
		}
		if !(a.PriceRangeMin <= q.BudgetMax && a.PriceRangeMax >= q.BudgetMin) {
			continue
		}
		if len(required) > 0 && !required.subsetOf(toSet(a.Amenities)) {
			continue
		}
		if lockedCity != "" && normalize(a.City) != lockedCity {
			continue
		}
		if a.Capacity < q.GroupSize {
			continue
		}
		if wantType != "" && !toSet(a.Types).has(wantType) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterGuides applies the guide hard rules and returns the survivors in
// their original order. A query without any non-blank language matches no guide.
func FilterGuides(pool []*entities.Guide, q entities.GuideQuery) []*entities.Guide {
	languages := toSet(q.Languages)
	lockedCity := lockedCity(q.City, q.CityOnly)
	gender := normalize(q.GenderPreference)

	out := make([]*entities.Guide, 0, len(pool))
	if q.BudgetMin > q.BudgetMax {
		return out
	}
	for _, g := range pool {
		if g == nil || !g.Available {
			continue
		}
		if toSet(g.Languages).intersectionSize(languages) == 0 {
			continue
		}
		if !(q.BudgetMin <= g.Price && g.Price <= q.BudgetMax) {
			continue
		}
		if lockedCity != "" && normalize(g.City) != lockedCity {
			continue
		}
		if gender != "" && normalize(g.Gender) != gender {
			continue
		}
		out = append(out, g)
	}
	return out
}

func lockedCity(city string, cityOnly bool) string {
	if !cityOnly {
		return ""
	}
	return normalize(city)
}

func accommodationTypeFilter(t string) string {
	t = normalize(t)
	if t == "any" {
		return ""
	}
	return t
}

// AccommodationFiltersApplied describes the active lodging constraints.
func AccommodationFiltersApplied(q entities.AccommodationQuery, policy AmenityPolicy) []string {
	filters := []string{
		fmt.Sprintf("Budget: %.0f-%.0f LKR", q.BudgetMin, q.BudgetMax),
		fmt.Sprintf("Group size: %d", q.GroupSize),
	}
	if len(q.RequiredAmenities) > 0 {
		label := "Preferred amenities"
		if policy == AmenityPolicyStrict {
			label = "Amenities"
		}
		filters = append(filters, fmt.Sprintf("%s: %s", label, strings.Join(q.RequiredAmenities, ", ")))
	}
	if t := strings.TrimSpace(q.AccommodationType); accommodationTypeFilter(t) != "" {
		filters = append(filters, "Type: "+t)
	}
	filters = append(filters, locationFilterLines(q.City, q.CityOnly)...)
	return append(filters, "Availability: Available")
}

// GuideFiltersApplied describes the active guide constraints.
func GuideFiltersApplied(q entities.GuideQuery) []string {
	filters := []string{fmt.Sprintf("Budget: %.0f-%.0f LKR/day", q.BudgetMin, q.BudgetMax)}
	if len(q.Languages) > 0 {
		filters = append(filters, "Languages: "+strings.Join(q.Languages, ", "))
	}
	if len(q.Expertise) > 0 {
		filters = append(filters, "Expertise: "+strings.Join(q.Expertise, ", "))
	}
	filters = append(filters, locationFilterLines(q.City, q.CityOnly)...)
	if g := strings.TrimSpace(q.GenderPreference); g != "" {
		filters = append(filters, "Gender: "+capitalize(g))
	}
	return append(filters, "Availability: Available")
}

func locationFilterLines(city string, cityOnly bool) []string {
	city = strings.TrimSpace(city)
	switch {
	case city == "":
		return nil
	case cityOnly:
		return []string{fmt.Sprintf("Location: %s only", city)}
	default:
		return []string{"Preferred location: " + city}
	}
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	r := []rune(lower)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
