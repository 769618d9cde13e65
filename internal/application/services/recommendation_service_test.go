package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylontrails/travelmatch/internal/application/scoring"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
)

type stubAccommodationRepo struct {
	items      []*entities.Accommodation
	err        error
	calls      int
	lastFilter repositories.CandidateFilter
}

func (r *stubAccommodationRepo) ListCandidates(_ context.Context, f repositories.CandidateFilter) ([]*entities.Accommodation, error) {
	r.calls++
	r.lastFilter = f
	return r.items, r.err
}

type stubGuideRepo struct {
	items []*entities.Guide
	err   error
	calls int
}

func (r *stubGuideRepo) ListCandidates(context.Context, repositories.CandidateFilter) ([]*entities.Guide, error) {
	r.calls++
	return r.items, r.err
}

func stays(origin entities.Origin, n int) []*entities.Accommodation {
	out := make([]*entities.Accommodation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &entities.Accommodation{
			ID:            fmt.Sprintf("%s-%d", origin, i),
			Name:          "Stay",
			City:          "Kandy",
			Province:      "Central",
			PriceRangeMin: 2000,
			PriceRangeMax: 4000,
			Capacity:      2,
			Available:     true,
			Origin:        origin,
		})
	}
	return out
}

func lodgingQuery() entities.AccommodationQuery {
	return entities.AccommodationQuery{BudgetMin: 1000, BudgetMax: 50000, GroupSize: 1, AccommodationType: "any", TopK: 10}
}

func newLodgingService(live, synthetic repositories.AccommodationRepository) *AccommodationRecommendationService {
	engine := scoring.NewLodgingEngine(scoring.DefaultWeightProfile(), scoring.AmenityPolicySoft)
	return NewAccommodationRecommendationService(live, synthetic, engine, 5, nil)
}

func TestAccommodationService_PadsThinLivePool(t *testing.T) {
	live := &stubAccommodationRepo{items: stays(entities.OriginLive, 2)}
	synthetic := &stubAccommodationRepo{items: stays(entities.OriginSynthetic, 3)}

	resp, err := newLodgingService(live, synthetic).Recommend(context.Background(), lodgingQuery())
	require.NoError(t, err)

	assert.Equal(t, 1, synthetic.calls)
	assert.Equal(t, 5, resp.TotalCandidates)
	// live rows get the origin bonus and rank first
	assert.True(t, resp.Recommendations[0].InSystem)
	assert.True(t, resp.Recommendations[1].InSystem)
	assert.False(t, resp.Recommendations[2].InSystem)
}

func TestAccommodationService_SkipsFallbackWhenLiveIsEnough(t *testing.T) {
	live := &stubAccommodationRepo{items: stays(entities.OriginLive, 5)}
	synthetic := &stubAccommodationRepo{items: stays(entities.OriginSynthetic, 3)}

	resp, err := newLodgingService(live, synthetic).Recommend(context.Background(), lodgingQuery())
	require.NoError(t, err)

	assert.Equal(t, 0, synthetic.calls)
	assert.Equal(t, 5, resp.TotalCandidates)
}

func TestAccommodationService_LiveFailureDegradesToSynthetic(t *testing.T) {
	live := &stubAccommodationRepo{err: errors.New("connection refused")}
	synthetic := &stubAccommodationRepo{items: stays(entities.OriginSynthetic, 2)}

	resp, err := newLodgingService(live, synthetic).Recommend(context.Background(), lodgingQuery())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.TotalCandidates)
}

func TestAccommodationService_PushesDownLockedCityOnly(t *testing.T) {
	live := &stubAccommodationRepo{items: stays(entities.OriginLive, 5)}
	svc := newLodgingService(live, nil)

	q := lodgingQuery()
	q.City = "Kandy"
	_, err := svc.Recommend(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, live.lastFilter.City)

	q.CityOnly = true
	_, err = svc.Recommend(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, repositories.CandidateFilter{BudgetMin: 1000, BudgetMax: 50000, City: "Kandy"}, live.lastFilter)
}

func TestAccommodationService_EmptyPoolMessage(t *testing.T) {
	resp, err := newLodgingService(nil, &stubAccommodationRepo{}).Recommend(context.Background(), lodgingQuery())
	require.NoError(t, err)

	assert.Equal(t, NoAccommodationsFoundMessage, resp.Message)
	assert.Equal(t, 0, resp.TotalCandidates)
	assert.NotNil(t, resp.Recommendations)
	assert.Equal(t, "Budget: 1000-50000 LKR", resp.FiltersApplied[0])
}

func TestAccommodationService_NoMatchMessage(t *testing.T) {
	synthetic := &stubAccommodationRepo{items: stays(entities.OriginSynthetic, 2)}
	q := lodgingQuery()
	q.GroupSize = 10

	resp, err := newLodgingService(nil, synthetic).Recommend(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, scoring.NoAccommodationsMatchMessage, resp.Message)
}

func TestGuideService_HybridPoolAndEmpty(t *testing.T) {
	live := &stubGuideRepo{items: []*entities.Guide{{
		ID: "live-1", Languages: []string{"English"}, Price: 5000, Available: true, Origin: entities.OriginLive,
	}}}
	synthetic := &stubGuideRepo{items: []*entities.Guide{{
		ID: "syn-1", Languages: []string{"English"}, Price: 5000, Available: true, Origin: entities.OriginSynthetic,
	}}}
	svc := NewGuideRecommendationService(live, synthetic, scoring.NewGuideEngine(), 0, nil)
	q := entities.GuideQuery{BudgetMin: 2000, BudgetMax: 20000, Languages: []string{"English"}, TopK: 10}

	resp, err := svc.Recommend(context.Background(), q)
	require.NoError(t, err)
	require.Len(t, resp.Recommendations, 2)
	assert.Equal(t, "live-1", resp.Recommendations[0].ID)

	empty := NewGuideRecommendationService(nil, &stubGuideRepo{}, scoring.NewGuideEngine(), 5, nil)
	resp, err = empty.Recommend(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, NoGuidesFoundMessage, resp.Message)
	assert.Empty(t, resp.Recommendations)
}
