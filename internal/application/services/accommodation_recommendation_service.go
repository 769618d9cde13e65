package services

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ceylontrails/travelmatch/internal/application/scoring"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
)

const NoAccommodationsFoundMessage = "No accommodations found. Try adjusting your filters."

// AccommodationRecommendationService assembles the hybrid lodging pool and ranks it.
type AccommodationRecommendationService struct {
	live      repositories.AccommodationRepository
	synthetic repositories.AccommodationRepository
	engine    *scoring.LodgingEngine
	minLive   int
	metrics   *observability.Metrics
}

// NewAccommodationRecommendationService wires the service. live may be nil
// when no database is configured.
func NewAccommodationRecommendationService(
	live, synthetic repositories.AccommodationRepository,
	engine *scoring.LodgingEngine,
	minLive int,
	metrics *observability.Metrics,
) *AccommodationRecommendationService {
	if minLive <= 0 {
		minLive = DefaultMinLiveCandidates
	}
	return &AccommodationRecommendationService{
		live:      live,
		synthetic: synthetic,
		engine:    engine,
		minLive:   minLive,
		metrics:   metrics,
	}
}

func (s *AccommodationRecommendationService) Recommend(ctx context.Context, q entities.AccommodationQuery) (*entities.AccommodationResponse, error) {
	ctx, span := observability.StartSpan(ctx, "recommend.accommodations",
		attribute.Int("recommendation.top_k", q.TopK),
		attribute.Bool("recommendation.city_only", q.CityOnly),
	)
	defer span.End()
	start := time.Now()
	logger := observability.LoggerFromContext(ctx)

	filter := repositories.CandidateFilter{BudgetMin: q.BudgetMin, BudgetMax: q.BudgetMax}
	if q.CityOnly {
		filter.City = q.City
	}
	pool, padded := assemblePool[*entities.Accommodation](ctx, "lodging", s.live, s.synthetic, filter, s.minLive)
	span.SetAttributes(attribute.Int("recommendation.pool_size", len(pool)))

	if len(pool) == 0 {
		s.metrics.RecordRecommendation(ctx, "lodging", "empty", 0, padded, time.Since(start))
		return &entities.AccommodationResponse{
			Recommendations: []entities.AccommodationRecommendation{},
			FiltersApplied:  scoring.AccommodationFiltersApplied(q, s.engine.Policy()),
			Message:         NoAccommodationsFoundMessage,
		}, nil
	}

	resp, err := s.engine.Recommend(pool, q)
	if err != nil {
		observability.RecordError(span, err)
		s.metrics.RecordRecommendation(ctx, "lodging", "error", len(pool), padded, time.Since(start))
		return nil, err
	}

	outcome := "ok"
	if len(resp.Recommendations) == 0 {
		outcome = "empty"
	}
	s.metrics.RecordRecommendation(ctx, "lodging", outcome, len(pool), padded, time.Since(start))
	logger.Info().
		Int("pool_size", len(pool)).
		Int("total_candidates", resp.TotalCandidates).
		Int("returned", len(resp.Recommendations)).
		Bool("synthetic_padding", padded).
		Dur("duration", time.Since(start)).
		Msg("accommodation recommendations ranked")

	return resp, nil
}
