package evaluation

import (
	"time"

	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

// Domain names the candidate catalog a scenario is evaluated against.
type Domain string

const (
	DomainLodging Domain = "lodging"
	DomainGuide   Domain = "guide"
)

// IsValid checks if the domain value is one of the defined constants.
func (d Domain) IsValid() bool {
	switch d {
	case DomainLodging, DomainGuide:
		return true
	}
	return false
}

// ScenarioQuery carries the request fields of either domain.
type ScenarioQuery struct {
	BudgetMin         float64  `json:"budget_min"`
	BudgetMax         float64  `json:"budget_max"`
	RequiredAmenities []string `json:"required_amenities,omitempty"`
	Interests         []string `json:"interests,omitempty"`
	TravelStyle       string   `json:"travel_style,omitempty"`
	GroupSize         int      `json:"group_size,omitempty"`
	AccommodationType string   `json:"accommodation_type,omitempty"`
	Languages         []string `json:"languages,omitempty"`
	Expertise         []string `json:"expertise,omitempty"`
	GenderPreference  string   `json:"gender_preference,omitempty"`
	City              string   `json:"city,omitempty"`
	Province          string   `json:"province,omitempty"`
	CityOnly          bool     `json:"city_only,omitempty"`
	TopK              int      `json:"top_k,omitempty"`
}

func (q ScenarioQuery) accommodationQuery(topK int) entities.AccommodationQuery {
	accType := q.AccommodationType
	if accType == "" {
		accType = "any"
	}
	return entities.AccommodationQuery{
		BudgetMin:         q.BudgetMin,
		BudgetMax:         q.BudgetMax,
		RequiredAmenities: q.RequiredAmenities,
		Interests:         q.Interests,
		TravelStyle:       q.TravelStyle,
		GroupSize:         q.GroupSize,
		AccommodationType: accType,
		City:              q.City,
		Province:          q.Province,
		CityOnly:          q.CityOnly,
		TopK:              topK,
	}
}

func (q ScenarioQuery) guideQuery(topK int) entities.GuideQuery {
	return entities.GuideQuery{
		BudgetMin:        q.BudgetMin,
		BudgetMax:        q.BudgetMax,
		Languages:        q.Languages,
		Expertise:        q.Expertise,
		City:             q.City,
		Province:         q.Province,
		CityOnly:         q.CityOnly,
		GenderPreference: q.GenderPreference,
		TopK:             topK,
	}
}

// Scenario is a labeled query with the traits a relevant result should have.
type Scenario struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Domain           Domain        `json:"domain"`
	Query            ScenarioQuery `json:"query"`
	ExpectedTags     []string      `json:"expected_tags"`
	ExpectedProvince string        `json:"expected_province"`
}

// EvalResult holds the evaluation outcome for a single scenario.
type EvalResult struct {
	ScenarioID         string        `json:"scenario_id"`
	Name               string        `json:"name"`
	Domain             Domain        `json:"domain"`
	NumRecommendations int           `json:"num_recommendations"`
	NumCandidates      int           `json:"num_candidates"`
	NumRelevant        int           `json:"num_relevant"`
	PrecisionAt5       float64       `json:"precision_at_5"`
	PrecisionAt10      float64       `json:"precision_at_10"`
	RecallAt5          float64       `json:"recall_at_5"`
	RecallAt10         float64       `json:"recall_at_10"`
	NDCGAt5            float64       `json:"ndcg_at_5"`
	NDCGAt10           float64       `json:"ndcg_at_10"`
	AveragePrecision   float64       `json:"average_precision"`
	MRRAt10            float64       `json:"mrr_at_10"`
	AverageScore       float64       `json:"average_score"`
	Latency            time.Duration `json:"latency_ns"`
}

// EvalSummary holds aggregate metrics across all scenarios.
type EvalSummary struct {
	TotalScenarios int                       `json:"total_scenarios"`
	Results        []EvalResult              `json:"results"`
	ByDomain       map[Domain]*DomainSummary `json:"by_domain"`
}

// DomainSummary holds averaged metrics and catalog coverage for one domain.
type DomainSummary struct {
	Count                int     `json:"count"`
	AvgPrecisionAt5      float64 `json:"avg_precision_at_5"`
	AvgPrecisionAt10     float64 `json:"avg_precision_at_10"`
	AvgRecallAt5         float64 `json:"avg_recall_at_5"`
	AvgRecallAt10        float64 `json:"avg_recall_at_10"`
	AvgNDCGAt5           float64 `json:"avg_ndcg_at_5"`
	AvgNDCGAt10          float64 `json:"avg_ndcg_at_10"`
	MeanAveragePrecision float64 `json:"mean_average_precision"`
	AvgMRRAt10           float64 `json:"avg_mrr_at_10"`
	AvgScore             float64 `json:"avg_score"`
	CoverageAt5          float64 `json:"coverage_at_5"`
	CoverageAt10         float64 `json:"coverage_at_10"`
}
