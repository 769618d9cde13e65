package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
)

// CacheWarmingService primes the candidate cache for the filters most
// requests resolve to, so the first callers after a deploy or a seed run
// do not all fall through to PostgreSQL.
type CacheWarmingService struct {
	accommodations repositories.AccommodationRepository
	guides         repositories.GuideRepository
	lodgingFilters []repositories.CandidateFilter
	guideFilters   []repositories.CandidateFilter
}

// NewCacheWarmingService expects the cached repository decorators; warming
// an uncached adapter only costs a query.
func NewCacheWarmingService(
	accommodations repositories.AccommodationRepository,
	guides repositories.GuideRepository,
	lodgingFilters []repositories.CandidateFilter,
	guideFilters []repositories.CandidateFilter,
) *CacheWarmingService {
	return &CacheWarmingService{
		accommodations: accommodations,
		guides:         guides,
		lodgingFilters: lodgingFilters,
		guideFilters:   guideFilters,
	}
}

// WarmCache loads every configured filter once. Failures are logged and
// counted; warming never blocks serving.
func (s *CacheWarmingService) WarmCache(ctx context.Context) (warmed int, failed int) {
	if s.accommodations != nil {
		for _, f := range s.lodgingFilters {
			rows, err := s.accommodations.ListCandidates(ctx, f)
			if err != nil {
				log.Warn().Err(err).Float64("budget_min", f.BudgetMin).Float64("budget_max", f.BudgetMax).Str("city", f.City).Msg("failed to warm accommodation candidates")
				failed++
				continue
			}
			log.Debug().Int("rows", len(rows)).Str("city", f.City).Msg("warmed accommodation candidates")
			warmed++
		}
	}

	if s.guides != nil {
		for _, f := range s.guideFilters {
			rows, err := s.guides.ListCandidates(ctx, f)
			if err != nil {
				log.Warn().Err(err).Float64("budget_min", f.BudgetMin).Float64("budget_max", f.BudgetMax).Str("city", f.City).Msg("failed to warm guide candidates")
				failed++
				continue
			}
			log.Debug().Int("rows", len(rows)).Str("city", f.City).Msg("warmed guide candidates")
			warmed++
		}
	}

	log.Info().Int("warmed", warmed).Int("failed", failed).Msg("candidate cache warming completed")
	return warmed, failed
}

// StartPeriodicWarming warms once synchronously, then again every interval
// until ctx is cancelled. A non-positive interval disables the loop.
func (s *CacheWarmingService) StartPeriodicWarming(ctx context.Context, interval time.Duration) {
	s.WarmCache(ctx)

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("stopping candidate cache warming")
				return
			case <-ticker.C:
				s.WarmCache(ctx)
			}
		}
	}()
	log.Info().Dur("interval", interval).Msg("started periodic candidate cache warming")
}
