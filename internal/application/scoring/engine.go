package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

const (
	NoAccommodationsMatchMessage = "No accommodations match your criteria"
	NoGuidesMatchMessage         = "No guides match your criteria"

	// DefaultTopK applies when a query carries no positive top_k.
	DefaultTopK = 10
)

// LodgingEngine runs filter, score, aggregate, rank and explain for lodging
// requests. It holds no per-request state and is safe for concurrent use.
type LodgingEngine struct {
	weights WeightProfile
	policy  AmenityPolicy
}

func NewLodgingEngine(weights WeightProfile, policy AmenityPolicy) *LodgingEngine {
	if policy == "" {
		policy = AmenityPolicySoft
	}
	return &LodgingEngine{weights: weights, policy: policy}
}

func (e *LodgingEngine) Weights() WeightProfile { return e.weights }

func (e *LodgingEngine) Policy() AmenityPolicy { return e.policy }

// Recommend ranks pool against q. An empty result is a valid response with a
// message; an error is returned only when a candidate record cannot be scored.
func (e *LodgingEngine) Recommend(pool []*entities.Accommodation, q entities.AccommodationQuery) (*entities.AccommodationResponse, error) {
	candidates := FilterAccommodations(pool, q, e.policy)
	resp := &entities.AccommodationResponse{
		Recommendations: []entities.AccommodationRecommendation{},
		TotalCandidates: len(candidates),
		FiltersApplied:  AccommodationFiltersApplied(q, e.policy),
	}
	if len(candidates) == 0 {
		resp.Message = NoAccommodationsMatchMessage
		return resp, nil
	}

	stats := AccommodationPoolStats(candidates)
	scored := make([]Scored[*entities.Accommodation, LodgingComponents], 0, len(candidates))
	for _, a := range candidates {
		comps := ScoreAccommodation(a, q, stats)
		score := e.weights.Aggregate(&comps)
		if !isFinite(score) {
			return nil, apperrors.NewInternalError(fmt.Sprintf("cannot score accommodation %q", a.ID), errMalformedCandidate)
		}
		scored = append(scored, Scored[*entities.Accommodation, LodgingComponents]{Candidate: a, Score: score, Components: comps})
	}

	Rank(scored, func(a *entities.Accommodation) (float64, int) {
		return ratingOrZero(a.Rating), a.PriorBookings
	})

	for _, s := range TopK(scored, topK(q.TopK)) {
		a := s.Candidate
		resp.Recommendations = append(resp.Recommendations, entities.AccommodationRecommendation{
			ID:            a.ID,
			Name:          a.Name,
			ProviderName:  a.ProviderName,
			City:          a.City,
			Province:      a.Province,
			PriceRangeMin: a.PriceRangeMin,
			PriceRangeMax: a.PriceRangeMax,
			Rating:        a.Rating,
			Types:         nonNil(a.Types),
			Amenities:     nonNil(a.Amenities),
			Score:         RoundScore(s.Score),
			Reasons:       LodgingReasons(a, q, s.Components, e.weights),
			InSystem:      a.Origin.IsLive(),
		})
	}
	return resp, nil
}

// GuideEngine runs the point-additive pipeline for guide requests.
type GuideEngine struct{}

func NewGuideEngine() *GuideEngine {
	return &GuideEngine{}
}

func (e *GuideEngine) Recommend(pool []*entities.Guide, q entities.GuideQuery) (*entities.GuideResponse, error) {
	candidates := FilterGuides(pool, q)
	resp := &entities.GuideResponse{
		Recommendations: []entities.GuideRecommendation{},
		TotalCandidates: len(candidates),
		FiltersApplied:  GuideFiltersApplied(q),
	}
	if len(candidates) == 0 {
		resp.Message = NoGuidesMatchMessage
		return resp, nil
	}

	stats := GuidePoolStats(candidates)
	scored := make([]Scored[*entities.Guide, GuideComponents], 0, len(candidates))
	for _, g := range candidates {
		comps := ScoreGuide(g, q, stats)
		score := comps.Normalize()
		if !isFinite(score) {
			return nil, apperrors.NewInternalError(fmt.Sprintf("cannot score guide %q", g.ID), errMalformedCandidate)
		}
		scored = append(scored, Scored[*entities.Guide, GuideComponents]{Candidate: g, Score: score, Components: comps})
	}

	Rank(scored, func(g *entities.Guide) (float64, int) {
		return ratingOrZero(g.Rating), g.PriorBookings
	})

	for _, s := range TopK(scored, topK(q.TopK)) {
		g := s.Candidate
		resp.Recommendations = append(resp.Recommendations, entities.GuideRecommendation{
			ID:        g.ID,
			Name:      g.Name,
			City:      g.City,
			Province:  g.Province,
			Price:     g.Price,
			Rating:    g.Rating,
			Languages: nonNil(g.Languages),
			Expertise: nonNil(g.Expertise),
			Score:     RoundScore(s.Score),
			Reasons:   GuideReasons(g, q, s.Components),
			InSystem:  g.Origin.IsLive(),
		})
	}
	return resp, nil
}

var errMalformedCandidate = errors.New("candidate record produced a non-finite score")

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func topK(k int) int {
	if k <= 0 {
		return DefaultTopK
	}
	return k
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
