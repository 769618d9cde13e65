package entities

// AccommodationQuery is a validated lodging request.
type AccommodationQuery struct {
	BudgetMin         float64
	BudgetMax         float64
	RequiredAmenities []string
	Interests         []string
	TravelStyle       string
	GroupSize         int
	AccommodationType string
	City              string
	Province          string
	CityOnly          bool
	TopK              int
}

// GuideQuery is a validated guide request.
type GuideQuery struct {
	BudgetMin        float64
	BudgetMax        float64
	Languages        []string
	Expertise        []string
	City             string
	Province         string
	CityOnly         bool
	GenderPreference string
	TopK             int
}
