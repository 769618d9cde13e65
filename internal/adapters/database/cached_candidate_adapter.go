package database

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/providers"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
)

const (
	AccommodationCacheNamespace = "accommodations"
	GuideCacheNamespace         = "guides"

	cacheWriteTimeout = 2 * time.Second
)

// candidateCacheKey identifies one pushed-down filter. Only raw candidate
// records are stored under it; rankings are always recomputed.
func candidateCacheKey(namespace string, filter repositories.CandidateFilter) string {
	return fmt.Sprintf("candidates:%s:%s:%s:%s",
		namespace,
		strconv.FormatFloat(filter.BudgetMin, 'f', -1, 64),
		strconv.FormatFloat(filter.BudgetMax, 'f', -1, 64),
		strings.ToLower(strings.TrimSpace(filter.City)),
	)
}

// CandidateCachePattern matches every cached candidate list of a namespace.
func CandidateCachePattern(namespace string) string {
	return fmt.Sprintf("candidates:%s:*", namespace)
}

type cachedLoader[T any] struct {
	cache     providers.CacheProvider
	ttl       int
	namespace string
	metrics   *observability.Metrics
}

// load serves from cache when possible and otherwise calls fetch, writing the
// result back in the background. Cache failures never fail the request.
func (l cachedLoader[T]) load(ctx context.Context, filter repositories.CandidateFilter, fetch func(context.Context) ([]T, error)) ([]T, error) {
	logger := observability.LoggerFromContext(ctx)
	key := candidateCacheKey(l.namespace, filter)

	cached, err := l.cache.Get(ctx, key)
	switch {
	case err == nil:
		var items []T
		if err := json.Unmarshal(cached, &items); err == nil {
			l.metrics.RecordCacheLookup(ctx, l.namespace, true)
			return items, nil
		}
		logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cached candidates")
	case !errors.Is(err, providers.ErrCacheMiss):
		logger.Warn().Err(err).Str("key", key).Msg("candidate cache read failed")
	}
	l.metrics.RecordCacheLookup(ctx, l.namespace, false)

	items, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(items)
	if err != nil {
		logger.Warn().Err(err).Str("key", key).Msg("failed to encode candidates for cache")
		return items, nil
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cancel()
		if err := l.cache.Set(bgCtx, key, data, l.ttl); err != nil {
			logger.Warn().Err(err).Str("key", key).Msg("failed to cache candidates")
		}
	}()

	return items, nil
}

// CachedAccommodationAdapter wraps a live accommodation store with a short-lived cache.
type CachedAccommodationAdapter struct {
	adapter repositories.AccommodationRepository
	loader  cachedLoader[*entities.Accommodation]
}

func NewCachedAccommodationAdapter(adapter repositories.AccommodationRepository, cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) *CachedAccommodationAdapter {
	return &CachedAccommodationAdapter{
		adapter: adapter,
		loader:  cachedLoader[*entities.Accommodation]{cache: cache, ttl: ttlSeconds, namespace: AccommodationCacheNamespace, metrics: metrics},
	}
}

func (a *CachedAccommodationAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Accommodation, error) {
	return a.loader.load(ctx, filter, func(ctx context.Context) ([]*entities.Accommodation, error) {
		return a.adapter.ListCandidates(ctx, filter)
	})
}

// CachedGuideAdapter wraps a live guide store with a short-lived cache.
type CachedGuideAdapter struct {
	adapter repositories.GuideRepository
	loader  cachedLoader[*entities.Guide]
}

func NewCachedGuideAdapter(adapter repositories.GuideRepository, cache providers.CacheProvider, ttlSeconds int, metrics *observability.Metrics) *CachedGuideAdapter {
	return &CachedGuideAdapter{
		adapter: adapter,
		loader:  cachedLoader[*entities.Guide]{cache: cache, ttl: ttlSeconds, namespace: GuideCacheNamespace, metrics: metrics},
	}
}

func (a *CachedGuideAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Guide, error) {
	return a.loader.load(ctx, filter, func(ctx context.Context) ([]*entities.Guide, error) {
		return a.adapter.ListCandidates(ctx, filter)
	})
}
