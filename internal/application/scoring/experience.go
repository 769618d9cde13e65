package scoring

import (
	"regexp"
	"strconv"
	"strings"
)

// yearsPattern matches "5 years", "12 year", "10+ years" and "3yrs".
var yearsPattern = regexp.MustCompile(`(\d+)\s*\+?\s*(?:year|yr)`)

// MaxExperienceYears returns the largest year count mentioned in any entry and
// whether any entry mentioned one at all.
func MaxExperienceYears(entries []string) (int, bool) {
	maxYears, found := 0, false
	for _, entry := range entries {
		for _, m := range yearsPattern.FindAllStringSubmatch(strings.ToLower(entry), -1) {
			years, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			found = true
			if years > maxYears {
				maxYears = years
			}
		}
	}
	return maxYears, found
}

// ExperiencePoints awards 5/4/3 points for 10+/5+/3+ years and 2 otherwise,
// including when no year count can be parsed.
func ExperiencePoints(entries []string) float64 {
	years, found := MaxExperienceYears(entries)
	if !found {
		return 2
	}
	switch {
	case years >= 10:
		return 5
	case years >= 5:
		return 4
	case years >= 3:
		return 3
	default:
		return 2
	}
}
