package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
)

func TestCacheWarmingService_WarmsEveryFilter(t *testing.T) {
	acc := &stubAccommodationRepo{items: stays(entities.OriginLive, 2)}
	guides := &stubGuideRepo{}

	warmer := NewCacheWarmingService(acc, guides,
		[]repositories.CandidateFilter{
			{BudgetMin: 1000, BudgetMax: 50000},
			{BudgetMin: 1000, BudgetMax: 50000, City: "Galle"},
		},
		[]repositories.CandidateFilter{{BudgetMin: 2000, BudgetMax: 20000}},
	)

	warmed, failed := warmer.WarmCache(context.Background())
	assert.Equal(t, 3, warmed)
	assert.Zero(t, failed)
	assert.Equal(t, 2, acc.calls)
	assert.Equal(t, "Galle", acc.lastFilter.City)
	assert.Equal(t, 1, guides.calls)
}

func TestCacheWarmingService_CountsFailures(t *testing.T) {
	acc := &stubAccommodationRepo{err: errors.New("connection refused")}

	warmer := NewCacheWarmingService(acc, nil,
		[]repositories.CandidateFilter{{BudgetMin: 1000, BudgetMax: 50000}},
		[]repositories.CandidateFilter{{BudgetMin: 2000, BudgetMax: 20000}},
	)

	warmed, failed := warmer.WarmCache(context.Background())
	assert.Zero(t, warmed)
	assert.Equal(t, 1, failed)
}

func TestCacheWarmingService_NoIntervalWarmsOnce(t *testing.T) {
	acc := &stubAccommodationRepo{}
	warmer := NewCacheWarmingService(acc, nil, []repositories.CandidateFilter{{BudgetMax: 50000}}, nil)

	warmer.StartPeriodicWarming(context.Background(), 0)
	assert.Equal(t, 1, acc.calls)
}
