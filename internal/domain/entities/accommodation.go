package entities

import (
	"encoding/json"
	"strings"
)

// Accommodation is a lodging candidate as seen by the recommendation pipeline.
type Accommodation struct {
	ID            string   `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	ProviderName  string   `json:"provider_name,omitempty" db:"provider_name"`
	Types         []string `json:"type" db:"type"`
	Amenities     []string `json:"amenities" db:"amenities"`
	Interests     []string `json:"interests" db:"interests"`
	TravelStyles  []string `json:"travel_style" db:"travel_style"`
	Rating        *float64 `json:"rating" db:"rating"`
	City          string   `json:"district" db:"district"`
	Province      string   `json:"province" db:"province"`
	PriceRangeMin float64  `json:"price_range_min" db:"price_range_min"`
	PriceRangeMax float64  `json:"price_range_max" db:"price_range_max"`
	Capacity      int      `json:"group_size" db:"group_size"`
	PriorBookings int      `json:"prior_bookings" db:"prior_bookings"`
	Available     bool     `json:"availability" db:"availability"`
	Origin        Origin   `json:"origin"`
}

// accommodationRecord is the wire shape accepted from fallback files. Optional
// fields are pointers so that absence can be told apart from zero values.
type accommodationRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	ProviderName  string   `json:"provider_name"`
	Types         []string `json:"type"`
	Amenities     []string `json:"amenities"`
	Interests     []string `json:"interests"`
	TravelStyles  []string `json:"travel_style"`
	Rating        *float64 `json:"rating"`
	District      string   `json:"district"`
	Location      string   `json:"location"`
	Province      string   `json:"province"`
	PriceRangeMin float64  `json:"price_range_min"`
	PriceRangeMax *float64 `json:"price_range_max"`
	Capacity      *int     `json:"group_size"`
	PriorBookings int      `json:"prior_bookings"`
	Available     *bool    `json:"availability"`
	Origin        Origin   `json:"origin"`
}

// UnmarshalJSON normalizes a stored record: availability defaults to true, a
// missing capacity to 1, a missing upper price to the lower one, and the older
// "location" key is accepted for the city.
func (a *Accommodation) UnmarshalJSON(data []byte) error {
	var rec accommodationRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	*a = Accommodation{
		ID:            rec.ID,
		Name:          rec.Name,
		ProviderName:  rec.ProviderName,
		Types:         rec.Types,
		Amenities:     rec.Amenities,
		Interests:     rec.Interests,
		TravelStyles:  rec.TravelStyles,
		Rating:        rec.Rating,
		City:          strings.TrimSpace(rec.District),
		Province:      strings.TrimSpace(rec.Province),
		PriceRangeMin: rec.PriceRangeMin,
		PriceRangeMax: rec.PriceRangeMin,
		Capacity:      1,
		PriorBookings: rec.PriorBookings,
		Available:     true,
		Origin:        rec.Origin,
	}
	if a.City == "" {
		a.City = strings.TrimSpace(rec.Location)
	}
	if rec.PriceRangeMax != nil {
		a.PriceRangeMax = *rec.PriceRangeMax
	}
	if rec.Capacity != nil {
		a.Capacity = *rec.Capacity
	}
	if rec.Available != nil {
		a.Available = *rec.Available
	}
	if a.PriorBookings < 0 {
		a.PriorBookings = 0
	}
	return nil
}
