package entities

// AccommodationRecommendation is the outward projection of a ranked lodging candidate.
type AccommodationRecommendation struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ProviderName  string   `json:"provider_name,omitempty"`
	City          string   `json:"district"`
	Province      string   `json:"province"`
	PriceRangeMin float64  `json:"price_range_min"`
	PriceRangeMax float64  `json:"price_range_max"`
	Rating        *float64 `json:"rating"`
	Types         []string `json:"type"`
	Amenities     []string `json:"amenities"`
	Score         float64  `json:"score"`
	Reasons       []string `json:"reasons"`
	InSystem      bool     `json:"in_system"`
}

// GuideRecommendation is the outward projection of a ranked guide.
type GuideRecommendation struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	City      string   `json:"city"`
	Province  string   `json:"province"`
	Price     float64  `json:"price"`
	Rating    *float64 `json:"rating"`
	Languages []string `json:"languages"`
	Expertise []string `json:"expertise"`
	Score     float64  `json:"score"`
	Reasons   []string `json:"reasons"`
	InSystem  bool     `json:"in_system"`
}

// AccommodationResponse is the result of one lodging recommendation run.
type AccommodationResponse struct {
	Recommendations []AccommodationRecommendation `json:"recommendations"`
	TotalCandidates int                           `json:"total_candidates"`
	FiltersApplied  []string                      `json:"filters_applied"`
	Message         string                        `json:"message,omitempty"`
}

// GuideResponse is the result of one guide recommendation run.
type GuideResponse struct {
	Recommendations []GuideRecommendation `json:"recommendations"`
	TotalCandidates int                   `json:"total_candidates"`
	FiltersApplied  []string              `json:"filters_applied"`
	Message         string                `json:"message,omitempty"`
}
