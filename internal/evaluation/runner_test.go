package evaluation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylontrails/travelmatch/internal/application/scoring"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

func rating(v float64) *float64 { return &v }

func testCatalog() ([]*entities.Accommodation, []*entities.Guide) {
	stays := []*entities.Accommodation{
		{ID: "beach-1", City: "Galle", Province: "Southern", Interests: []string{"coastal", "luxury"},
			PriceRangeMin: 12000, PriceRangeMax: 20000, Capacity: 4, Available: true, Rating: rating(4.5)},
		{ID: "beach-2", City: "Mirissa", Province: "Southern", Interests: []string{"coastal"},
			PriceRangeMin: 9000, PriceRangeMax: 15000, Capacity: 2, Available: true, Rating: rating(3.6)},
		{ID: "hill-1", City: "Ella", Province: "Uva", Interests: []string{"hiking"},
			PriceRangeMin: 4000, PriceRangeMax: 6000, Capacity: 4, Available: true, Rating: rating(4.1)},
		{ID: "closed", City: "Galle", Province: "Southern", Interests: []string{"coastal", "luxury"},
			PriceRangeMin: 12000, PriceRangeMax: 20000, Capacity: 4, Available: false, Rating: rating(5)},
	}
	guides := []*entities.Guide{
		{ID: "g-kandy", City: "Kandy", Province: "Central", Price: 5000, Languages: []string{"English"},
			Expertise: []string{"Cultural", "Historical"}, Available: true, Rating: rating(4.4)},
		{ID: "g-galle", City: "Galle", Province: "Southern", Price: 7000, Languages: []string{"English"},
			Expertise: []string{"Surfing"}, Available: true, Rating: rating(3.0)},
	}
	return stays, guides
}

func TestRelevance(t *testing.T) {
	s := Scenario{ExpectedTags: []string{"coastal", "luxury"}, ExpectedProvince: "Southern"}

	assert.InDelta(t, 1.0, Relevance([]string{"Coastal", "luxury"}, "southern", rating(4.2), s), 1e-9)
	assert.InDelta(t, 0.25+0.3+0.1, Relevance([]string{"coastal"}, "Southern", rating(3.5), s), 1e-9)
	assert.InDelta(t, 0.0, Relevance(nil, "Uva", nil, s), 1e-9)
	// province alone stays below the relevance threshold
	assert.LessOrEqual(t, Relevance(nil, "Southern", nil, s), RelevanceThreshold)
}

func TestRunner_Run(t *testing.T) {
	stays, guides := testCatalog()
	runner := NewRunner(
		scoring.NewLodgingEngine(scoring.DefaultWeightProfile(), scoring.AmenityPolicySoft),
		scoring.NewGuideEngine(),
		stays, guides,
	)

	scenarios := []Scenario{
		{
			ID: "south-coast", Domain: DomainLodging,
			Query:            ScenarioQuery{BudgetMin: 8000, BudgetMax: 25000, Interests: []string{"coastal", "luxury"}, GroupSize: 2, City: "Galle", Province: "Southern"},
			ExpectedTags:     []string{"coastal", "luxury"},
			ExpectedProvince: "Southern",
		},
		{
			ID: "heritage-guide", Domain: DomainGuide,
			Query:            ScenarioQuery{BudgetMin: 2000, BudgetMax: 10000, Languages: []string{"English"}, Expertise: []string{"Cultural"}},
			ExpectedTags:     []string{"Cultural"},
			ExpectedProvince: "Central",
		},
	}

	summary, err := runner.Run(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, summary.Results, 2)
	assert.Equal(t, 2, summary.TotalScenarios)

	lodging := summary.Results[0]
	assert.Equal(t, 2, lodging.NumCandidates)
	// beach-1, beach-2 and the unavailable listing grade as relevant
	assert.Equal(t, 3, lodging.NumRelevant)
	assert.InDelta(t, 1.0, lodging.MRRAt10, 1e-9)
	assert.InDelta(t, 2.0/3.0, lodging.RecallAt10, 1e-9)
	assert.Greater(t, lodging.AverageScore, 0.0)

	guide := summary.Results[1]
	assert.InDelta(t, 1.0, guide.MRRAt10, 1e-9)

	require.Contains(t, summary.ByDomain, DomainLodging)
	assert.InDelta(t, 0.5, summary.ByDomain[DomainLodging].CoverageAt10, 1e-9)
	assert.InDelta(t, 1.0, summary.ByDomain[DomainGuide].CoverageAt5, 1e-9)
	assert.Equal(t, 1, summary.ByDomain[DomainGuide].Count)
}

func TestRunner_SmallTopKDoesNotShortenCutoffs(t *testing.T) {
	stays, guides := testCatalog()
	runner := NewRunner(scoring.NewLodgingEngine(scoring.DefaultWeightProfile(), scoring.AmenityPolicySoft), scoring.NewGuideEngine(), stays, guides)

	scenario := Scenario{
		ID: "south-coast-top1", Domain: DomainLodging,
		Query:            ScenarioQuery{BudgetMin: 8000, BudgetMax: 25000, Interests: []string{"coastal", "luxury"}, GroupSize: 2, City: "Galle", Province: "Southern", TopK: 1},
		ExpectedTags:     []string{"coastal", "luxury"},
		ExpectedProvince: "Southern",
	}

	summary, err := runner.Run(context.Background(), []Scenario{scenario})
	require.NoError(t, err)

	res := summary.Results[0]
	assert.Equal(t, 1, res.NumRecommendations)
	assert.InDelta(t, 2.0/3.0, res.RecallAt10, 1e-9)
	assert.InDelta(t, 2.0/10.0, res.PrecisionAt10, 1e-9)
	assert.InDelta(t, 2.0/5.0, res.PrecisionAt5, 1e-9)
}

func TestRunner_CancelledContext(t *testing.T) {
	stays, guides := testCatalog()
	runner := NewRunner(scoring.NewLodgingEngine(scoring.DefaultWeightProfile(), ""), scoring.NewGuideEngine(), stays, guides)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, []Scenario{{ID: "x", Domain: DomainLodging, ExpectedProvince: "Uva"}})
	assert.ErrorIs(t, err, context.Canceled)
}
