package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
)

// BreakerSettings controls when the live store is taken out of rotation.
type BreakerSettings struct {
	// ConsecutiveFailures opens the circuit.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the circuit stays open before a trial request.
	OpenTimeout time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{ConsecutiveFailures: 5, OpenTimeout: 30 * time.Second}
}

func newBreaker[T any](name string, s BreakerSettings) *gobreaker.CircuitBreaker[[]T] {
	return gobreaker.NewCircuitBreaker[[]T](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		// A caller giving up says nothing about the store's health.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("live store circuit state changed")
		},
	})
}

// BreakerAccommodationAdapter fails fast while the live accommodation store
// keeps erroring; callers then serve the synthetic pool.
type BreakerAccommodationAdapter struct {
	adapter repositories.AccommodationRepository
	cb      *gobreaker.CircuitBreaker[[]*entities.Accommodation]
}

func NewBreakerAccommodationAdapter(adapter repositories.AccommodationRepository, s BreakerSettings) *BreakerAccommodationAdapter {
	return &BreakerAccommodationAdapter{
		adapter: adapter,
		cb:      newBreaker[*entities.Accommodation]("live-accommodations", s),
	}
}

func (a *BreakerAccommodationAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Accommodation, error) {
	return a.cb.Execute(func() ([]*entities.Accommodation, error) {
		return a.adapter.ListCandidates(ctx, filter)
	})
}

// BreakerGuideAdapter is the guide counterpart of BreakerAccommodationAdapter.
type BreakerGuideAdapter struct {
	adapter repositories.GuideRepository
	cb      *gobreaker.CircuitBreaker[[]*entities.Guide]
}

func NewBreakerGuideAdapter(adapter repositories.GuideRepository, s BreakerSettings) *BreakerGuideAdapter {
	return &BreakerGuideAdapter{
		adapter: adapter,
		cb:      newBreaker[*entities.Guide]("live-guides", s),
	}
}

func (a *BreakerGuideAdapter) ListCandidates(ctx context.Context, filter repositories.CandidateFilter) ([]*entities.Guide, error) {
	return a.cb.Execute(func() ([]*entities.Guide, error) {
		return a.adapter.ListCandidates(ctx, filter)
	})
}
