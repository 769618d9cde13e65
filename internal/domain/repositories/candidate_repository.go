package repositories

import (
	"context"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

// CandidateFilter is the coarse pre-filter pushed down to a candidate store.
// Stores may ignore it; the recommendation pipeline re-applies every rule.
type CandidateFilter struct {
	BudgetMin float64
	BudgetMax float64
	// City is set only when the request locks results to one city.
	City string
}

// AccommodationRepository sources lodging candidates.
type AccommodationRepository interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*entities.Accommodation, error)
}

// GuideRepository sources guide candidates.
type GuideRepository interface {
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]*entities.Guide, error)
}
