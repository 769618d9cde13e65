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

const NoGuidesFoundMessage = "No guides found. Try adjusting your filters."

// GuideRecommendationService assembles the hybrid guide pool and ranks it.
type GuideRecommendationService struct {
	live      repositories.GuideRepository
	synthetic repositories.GuideRepository
	engine    *scoring.GuideEngine
	minLive   int
	metrics   *observability.Metrics
}

func NewGuideRecommendationService(
	live, synthetic repositories.GuideRepository,
	engine *scoring.GuideEngine,
	minLive int,
	metrics *observability.Metrics,
) *GuideRecommendationService {
	if minLive <= 0 {
		minLive = DefaultMinLiveCandidates
	}
	return &GuideRecommendationService{
		live:      live,
		synthetic: synthetic,
		engine:    engine,
		minLive:   minLive,
		metrics:   metrics,
	}
}

func (s *GuideRecommendationService) Recommend(ctx context.Context, q entities.GuideQuery) (*entities.GuideResponse, error) {
	ctx, span := observability.StartSpan(ctx, "recommend.guides",
		attribute.Int("recommendation.top_k", q.TopK),
		attribute.StringSlice("recommendation.languages", q.Languages),
	)
	defer span.End()
	start := time.Now()
	logger := observability.LoggerFromContext(ctx)

	filter := repositories.CandidateFilter{BudgetMin: q.BudgetMin, BudgetMax: q.BudgetMax}
	if q.CityOnly {
		filter.City = q.City
	}
	pool, padded := assemblePool[*entities.Guide](ctx, "guide", s.live, s.synthetic, filter, s.minLive)
	span.SetAttributes(attribute.Int("recommendation.pool_size", len(pool)))

	if len(pool) == 0 {
		s.metrics.RecordRecommendation(ctx, "guide", "empty", 0, padded, time.Since(start))
		return &entities.GuideResponse{
			Recommendations: []entities.GuideRecommendation{},
			FiltersApplied:  scoring.GuideFiltersApplied(q),
			Message:         NoGuidesFoundMessage,
		}, nil
	}

	resp, err := s.engine.Recommend(pool, q)
	if err != nil {
		observability.RecordError(span, err)
		s.metrics.RecordRecommendation(ctx, "guide", "error", len(pool), padded, time.Since(start))
		return nil, err
	}

	outcome := "ok"
	if len(resp.Recommendations) == 0 {
		outcome = "empty"
	}
	s.metrics.RecordRecommendation(ctx, "guide", outcome, len(pool), padded, time.Since(start))
	logger.Info().
		Int("pool_size", len(pool)).
		Int("total_candidates", resp.TotalCandidates).
		Int("returned", len(resp.Recommendations)).
		Bool("synthetic_padding", padded).
		Dur("duration", time.Since(start)).
		Msg("guide recommendations ranked")

	return resp, nil
}
