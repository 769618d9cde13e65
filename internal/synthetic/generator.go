// Package synthetic produces plausible accommodation and guide records used as
// the fallback candidate pool and as seed data for the live store.
package synthetic

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

const (
	maxAccommodationBookings = 500
	maxGuideBookings         = 300
	maxGuidePrice            = 20000
)

// Generator is deterministic for a given seed. It is not safe for concurrent use.
type Generator struct {
	src *rand.ChaCha8
	rng *rand.Rand
}

// New returns a generator seeded with seed.
func New(seed uint64) *Generator {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	src := rand.NewChaCha8(key)
	return &Generator{src: src, rng: rand.New(src)}
}

// Accommodations generates n lodging records. Records carry no origin; the
// loader that serves them decides it.
func (g *Generator) Accommodations(n int) []entities.Accommodation {
	out := make([]entities.Accommodation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.accommodation())
	}
	return out
}

func (g *Generator) accommodation() entities.Accommodation {
	reg := pick(g.rng, regions)
	city := pick(g.rng, reg.Cities)
	accType := accommodationTypes[g.weightedIndex(accommodationWeights)]

	var priceMin, priceMax int
	switch accType {
	case "hostel":
		priceMin = g.between(500, 1500)
		priceMax = priceMin + g.between(500, 1000)
	case "resort", "villa", "boutique_hotel":
		priceMin = g.between(5000, 15000)
		priceMax = priceMin + g.between(5000, 20000)
	default:
		priceMin = g.between(2000, 8000)
		priceMax = priceMin + g.between(2000, 8000)
	}

	amen := g.sample(amenities, g.between(3, 8))
	if !slices.Contains(amen, "wifi") && g.rng.Float64() > 0.2 {
		amen = append(amen, "wifi")
	}
	if !slices.Contains(amen, "hot_water") && g.rng.Float64() > 0.1 {
		amen = append(amen, "hot_water")
	}

	tags := g.sample(interests, g.between(2, 5))
	if slices.Contains(coastalCities, city) && !slices.Contains(tags, "coastal") {
		tags = append(tags, "coastal")
	}
	if slices.Contains(hillCities, city) && !slices.Contains(tags, "hiking") && g.rng.Float64() > 0.5 {
		tags = append(tags, "hiking")
	}

	var capacity int
	switch accType {
	case "resort", "hotel":
		capacity = g.between(2, 20)
	case "villa":
		capacity = g.between(4, 12)
	case "hostel":
		capacity = g.between(1, 8)
	default:
		capacity = g.between(2, 6)
	}

	rating := round1(g.triangular(2.5, 5.0, 4.2))

	return entities.Accommodation{
		ID:            g.uuid(),
		Name:          g.accommodationName(city, accType),
		Types:         []string{accType},
		Amenities:     amen,
		Interests:     tags,
		TravelStyles:  g.sample(travelStyles, g.between(1, 3)),
		Rating:        &rating,
		City:          city,
		Province:      reg.Province,
		PriceRangeMin: float64(priceMin),
		PriceRangeMax: float64(priceMax),
		Capacity:      capacity,
		PriorBookings: min(g.lognormal(3, 1.5), maxAccommodationBookings),
		Available:     g.rng.Float64() > 0.1,
	}
}

func (g *Generator) accommodationName(city, accType string) string {
	switch accType {
	case "hostel":
		return fmt.Sprintf("%s %s Hostel", pick(g.rng, []string{"Backpacker", "Traveler", "Explorer"}), city)
	case "eco_lodge":
		return fmt.Sprintf("%s %s Lodge", city, pick(g.rng, []string{"Eco", "Nature", "Green"}))
	default:
		return fmt.Sprintf("%s %s %s", pick(g.rng, namePrefixes), city, pick(g.rng, nameSuffixes))
	}
}

// Guides generates n guide records.
func (g *Generator) Guides(n int) []entities.Guide {
	out := make([]entities.Guide, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.guide())
	}
	return out
}

func (g *Generator) guide() entities.Guide {
	reg := pick(g.rng, regions)
	city := pick(g.rng, reg.Cities)

	gender := "male"
	if g.rng.Float64() >= 0.7 {
		gender = "female"
	}

	langs := g.sample(languages, g.between(1, 4))
	if !slices.Contains(langs, "English") && g.rng.Float64() > 0.1 {
		langs = append(langs, "English")
	}
	if reg.Province == "Northern" || reg.Province == "Eastern" {
		if !slices.Contains(langs, "Tamil") && g.rng.Float64() > 0.3 {
			langs = append(langs, "Tamil")
		}
	} else if !slices.Contains(langs, "Sinhala") && g.rng.Float64() > 0.2 {
		langs = append(langs, "Sinhala")
	}

	exp := g.sample(expertiseAreas, g.between(2, 5))
	if slices.Contains(surfCities, city) && !containsAny(exp, beachExpertise) {
		exp = append(exp, pick(g.rng, beachExpertise))
	}
	if slices.Contains(wildlifeCities, city) && !slices.Contains(exp, "Wildlife") && g.rng.Float64() > 0.3 {
		exp = append(exp, "Wildlife")
	}
	if slices.Contains(heritageCities, city) && !containsAny(exp, heritageExpertise) {
		exp = append(exp, pick(g.rng, heritageExpertise))
	}
	if slices.Contains(trekkingCities, city) && !containsAny(exp, hillExpertise) {
		exp = append(exp, pick(g.rng, hillExpertise))
	}

	areas := g.between(1, 3)
	experience := make([]string, 0, areas)
	for i := 0; i < areas; i++ {
		experience = append(experience, fmt.Sprintf("%d years in %s", g.between(1, 15), pick(g.rng, exp)))
	}

	price := g.between(2000, 8000)
	if len(langs) >= 3 {
		price += 2000
	}
	if len(exp) >= 4 {
		price += 1500
	}
	if slices.Contains(exp, "Photography") || slices.Contains(exp, "Ayurveda") {
		price += 2000
	}

	rating := round1(g.triangular(3.0, 5.0, 4.3))

	return entities.Guide{
		ID:            g.uuid(),
		Name:          pick(g.rng, firstNames) + " " + pick(g.rng, lastNames),
		City:          city,
		Province:      reg.Province,
		Price:         float64(min(price, maxGuidePrice)),
		Rating:        &rating,
		Languages:     langs,
		Expertise:     exp,
		Experience:    experience,
		Gender:        gender,
		PriorBookings: min(g.lognormal(2.5, 1.3), maxGuideBookings),
		Available:     g.rng.Float64() > 0.2,
	}
}

func (g *Generator) uuid() string {
	id, err := uuid.NewRandomFromReader(g.src)
	if err != nil {
		// ChaCha8 reads never fail
		panic(err)
	}
	return id.String()
}

// between returns a uniform int in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// sample returns k distinct items in random order.
func (g *Generator) sample(items []string, k int) []string {
	k = min(k, len(items))
	perm := g.rng.Perm(len(items))
	out := make([]string, k)
	for i := 0; i < k; i++ {
		out[i] = items[perm[i]]
	}
	return out
}

func (g *Generator) weightedIndex(weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	r := g.rng.Float64() * total
	for i, w := range weights {
		if r < w {
			return i
		}
		r -= w
	}
	return len(weights) - 1
}

func (g *Generator) triangular(low, high, mode float64) float64 {
	u := g.rng.Float64()
	c := (mode - low) / (high - low)
	if u > c {
		u, c = 1-u, 1-c
		low, high = high, low
	}
	return low + (high-low)*math.Sqrt(u*c)
}

func (g *Generator) lognormal(mu, sigma float64) int {
	return int(math.Exp(mu + sigma*g.rng.NormFloat64()))
}

func pick[T any](r *rand.Rand, items []T) T {
	return items[r.IntN(len(items))]
}

func containsAny(have, want []string) bool {
	for _, w := range want {
		if slices.Contains(have, w) {
			return true
		}
	}
	return false
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
