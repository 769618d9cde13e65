package scoring

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

const maxLodgingReasons = 3

// LodgingReasons explains a lodging score using the three components with the
// largest weighted contribution. At least one reason is always returned.
func LodgingReasons(a *entities.Accommodation, q entities.AccommodationQuery, c LodgingComponents, weights WeightProfile) []string {
	order := make([]LodgingComponent, NumLodgingComponents)
	for i := range order {
		order[i] = LodgingComponent(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights.Weight(order[i])*c.Get(order[i]) > weights.Weight(order[j])*c.Get(order[j])
	})

	reasons := make([]string, 0, maxLodgingReasons)
	for _, comp := range order[:maxLodgingReasons] {
		if r := lodgingReason(comp, a, q, c.Get(comp)); r != "" {
			reasons = append(reasons, r)
		}
	}
	if len(reasons) == 0 {
		reasons = append(reasons, "Located in "+orDefault(a.City, "your area"))
	}
	return reasons
}

func lodgingReason(comp LodgingComponent, a *entities.Accommodation, q entities.AccommodationQuery, v float64) string {
	switch comp {
	case LodgingLocation:
		if v >= 0.9 {
			return "Within " + orDefault(a.City, "selected city")
		}
		if v >= 0.5 {
			return "Within " + orDefault(a.Province, "selected province")
		}
	case LodgingInterests:
		if v > 0.3 {
			if matched := firstN(matching(a.Interests, toSet(q.Interests)), 2); len(matched) > 0 {
				return "Matches " + strings.Join(matched, " & ")
			}
		}
	case LodgingAmenities:
		if v > 0.5 {
			target := toSet(q.RequiredAmenities)
			for _, am := range commonlyDesiredAmenities {
				target[am] = struct{}{}
			}
			if matched := firstN(matching(a.Amenities, target), 3); len(matched) > 0 {
				return "Has " + strings.Join(matched, ", ")
			}
		}
	case LodgingRating:
		if a.Rating != nil {
			switch r := *a.Rating; {
			case r >= 4.5:
				return fmt.Sprintf("Excellent rating (%.1f/5.0)", r)
			case r >= 4.0:
				return fmt.Sprintf("High rating (%.1f/5.0)", r)
			}
		}
	case LodgingStyle:
		if v > 0 {
			if matched := matching(a.TravelStyles, toSet([]string{q.TravelStyle})); len(matched) > 0 {
				return titleCase(strings.ReplaceAll(matched[0], "_", " ")) + " style"
			}
		}
	case LodgingPopularity:
		if v > 0.7 {
			return "Popular choice"
		}
	case LodgingPrice:
		if v > 0.8 {
			return "Within budget"
		}
	case LodgingOrigin:
		if v > 0 {
			return "Listed directly on our platform"
		}
	}
	return ""
}

// GuideReasons evaluates every guide reason category in a fixed order.
func GuideReasons(g *entities.Guide, q entities.GuideQuery, c GuideComponents) []string {
	var reasons []string

	switch loc := c.Get(GuideLocation); {
	case loc >= guideCityPoints:
		reasons = append(reasons, "Located in "+orDefault(g.City, "your selected city"))
	case loc >= guideProvincePoints:
		reasons = append(reasons, "Located in "+orDefault(g.Province, "your selected province"))
	}

	if langs := matching(q.Languages, toSet(g.Languages)); len(langs) > 0 {
		reasons = append(reasons, "Speaks: "+titleCase(strings.Join(langs, ", ")))
	}

	if len(toSet(q.Expertise)) > 0 {
		if topics := matching(q.Expertise, toSet(g.Expertise)); len(topics) > 0 {
			reasons = append(reasons, "Expert in: "+titleCase(strings.Join(topics, ", ")))
		}
	} else if len(g.Expertise) > 0 {
		reasons = append(reasons, "Specializes in: "+strings.Join(firstN(g.Expertise, 3), ", "))
	}

	if g.Rating != nil && *g.Rating >= 4.0 {
		reasons = append(reasons, fmt.Sprintf("%.1f/5.0 rating", *g.Rating))
	}

	switch pop := c.Get(GuidePopularity); {
	case pop >= 2:
		reasons = append(reasons, "Highly popular guide")
	case pop >= 1:
		reasons = append(reasons, "Popular choice")
	}

	if g.Price > 0 {
		reasons = append(reasons, fmt.Sprintf("%.0f LKR per day", g.Price))
	}

	if len(g.Experience) > 0 {
		if first := strings.TrimSpace(g.Experience[0]); first != "" {
			reasons = append(reasons, first)
		}
	}

	if g.Origin.IsLive() {
		reasons = append(reasons, "Available in our system")
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "Professional guide in "+orDefault(g.Province, "Sri Lanka"))
	}
	return reasons
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
