package services

import (
	"context"

	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
)

// DefaultMinLiveCandidates is the live row count below which the synthetic pool is appended.
const DefaultMinLiveCandidates = 5

type candidateSource[T any] interface {
	ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]T, error)
}

// assemblePool builds the hybrid pool: live rows first, then the synthetic
// pool when fewer than minLive live rows came back. A failing live store
// degrades to the synthetic pool alone. The second result reports whether
// synthetic records were appended.
func assemblePool[T any](ctx context.Context, domain string, live, synthetic candidateSource[T], filter repositories.CandidateFilter, minLive int) ([]T, bool) {
	logger := observability.LoggerFromContext(ctx)

	var pool []T
	if live != nil {
		rows, err := live.ListCandidates(ctx, filter)
		if err != nil {
			logger.Warn().Err(err).Str("domain", domain).Msg("live candidate store unavailable, using synthetic pool")
		} else {
			pool = rows
		}
	}

	if len(pool) >= minLive || synthetic == nil {
		return pool, false
	}

	extra, err := synthetic.ListCandidates(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Str("domain", domain).Msg("synthetic candidate pool unavailable")
		return pool, false
	}

	logger.Debug().
		Str("domain", domain).
		Int("live", len(pool)).
		Int("synthetic", len(extra)).
		Msg("padding thin live pool with synthetic candidates")

	merged := make([]T, 0, len(pool)+len(extra))
	merged = append(merged, pool...)
	return append(merged, extra...), true
}
