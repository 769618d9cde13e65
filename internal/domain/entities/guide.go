package entities

import (
	"encoding/json"
	"strings"
)

// Guide is a tour-guide candidate as seen by the recommendation pipeline.
type Guide struct {
	ID            string   `json:"id" db:"id"`
	Name          string   `json:"name" db:"name"`
	City          string   `json:"city" db:"city"`
	Province      string   `json:"province" db:"province"`
	Price         float64  `json:"price" db:"price"`
	Rating        *float64 `json:"rating" db:"rating"`
	Languages     []string `json:"languages" db:"languages"`
	Expertise     []string `json:"expertise" db:"expertise"`
	Experience    []string `json:"experience" db:"experience"`
	Gender        string   `json:"gender,omitempty" db:"gender"`
	PriorBookings int      `json:"prior_bookings" db:"prior_bookings"`
	Available     bool     `json:"availability" db:"availability"`
	Origin        Origin   `json:"origin"`
}

type guideRecord struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	City          string   `json:"city"`
	Province      string   `json:"province"`
	Price         float64  `json:"price"`
	Rating        *float64 `json:"rating"`
	Languages     []string `json:"languages"`
	Expertise     []string `json:"expertise"`
	Experience    []string `json:"experience"`
	Gender        string   `json:"gender"`
	PriorBookings int      `json:"prior_bookings"`
	Available     *bool    `json:"availability"`
	Origin        Origin   `json:"origin"`
}

// UnmarshalJSON normalizes a stored record; availability defaults to true.
func (g *Guide) UnmarshalJSON(data []byte) error {
	var rec guideRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	*g = Guide{
		ID:            rec.ID,
		Name:          rec.Name,
		City:          strings.TrimSpace(rec.City),
		Province:      strings.TrimSpace(rec.Province),
		Price:         rec.Price,
		Rating:        rec.Rating,
		Languages:     rec.Languages,
		Expertise:     rec.Expertise,
		Experience:    rec.Experience,
		Gender:        rec.Gender,
		PriorBookings: rec.PriorBookings,
		Available:     true,
		Origin:        rec.Origin,
	}
	if rec.Available != nil {
		g.Available = *rec.Available
	}
	if g.PriorBookings < 0 {
		g.PriorBookings = 0
	}
	return nil
}
