package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/ceylontrails/travelmatch/internal/application/scoring"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

var evalCutoffs = []int{5, 10}

// ranking is one engine run reduced to what the metrics need.
type ranking struct {
	ids        []string
	scores     []float64
	candidates int
}

// Runner evaluates the ranking engines offline against fixed catalogs.
type Runner struct {
	lodging        *scoring.LodgingEngine
	guides         *scoring.GuideEngine
	accommodations []*entities.Accommodation
	guidePool      []*entities.Guide
}

func NewRunner(lodging *scoring.LodgingEngine, guides *scoring.GuideEngine, accommodations []*entities.Accommodation, guidePool []*entities.Guide) *Runner {
	return &Runner{
		lodging:        lodging,
		guides:         guides,
		accommodations: accommodations,
		guidePool:      guidePool,
	}
}

// Run evaluates every scenario at k=5 and k=10 and computes per-domain coverage.
func (r *Runner) Run(ctx context.Context, scenarios []Scenario) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalScenarios: len(scenarios),
		Results:        make([]EvalResult, 0, len(scenarios)),
		ByDomain:       make(map[Domain]*DomainSummary),
	}

	for _, s := range scenarios {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := r.evaluate(s)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", s.ID, err)
		}
		summary.Results = append(summary.Results, res)
		r.updateSummary(summary, res)
	}

	if err := r.computeCoverage(summary, scenarios); err != nil {
		return nil, err
	}
	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) evaluate(s Scenario) (EvalResult, error) {
	topK := s.Query.TopK
	if topK <= 0 {
		topK = evalCutoffs[len(evalCutoffs)-1]
	}

	// Metrics are taken over the deepest cutoff even when the scenario serves
	// fewer results, so @10 figures never see a shortened list.
	start := time.Now()
	rk, err := r.rank(s, max(topK, evalCutoffs[len(evalCutoffs)-1]))
	if err != nil {
		return EvalResult{}, err
	}
	latency := time.Since(start)
	served := min(topK, len(rk.ids))

	grades := r.grades(s)
	var relevant []string
	for id, g := range grades {
		if g > RelevanceThreshold {
			relevant = append(relevant, id)
		}
	}

	res := EvalResult{
		ScenarioID:         s.ID,
		Name:               s.Name,
		Domain:             s.Domain,
		NumRecommendations: served,
		NumCandidates:      rk.candidates,
		NumRelevant:        len(relevant),
		PrecisionAt5:       PrecisionAtK(relevant, rk.ids, 5),
		PrecisionAt10:      PrecisionAtK(relevant, rk.ids, 10),
		RecallAt5:          RecallAtK(relevant, rk.ids, 5),
		RecallAt10:         RecallAtK(relevant, rk.ids, 10),
		NDCGAt5:            NDCGAtK(rk.ids, grades, 5),
		NDCGAt10:           NDCGAtK(rk.ids, grades, 10),
		AveragePrecision:   AveragePrecision(relevant, rk.ids),
		MRRAt10:            MRRAtK(relevant, rk.ids, 10),
		Latency:            latency,
	}
	if served > 0 {
		total := 0.0
		for _, sc := range rk.scores[:served] {
			total += sc
		}
		res.AverageScore = total / float64(served)
	}
	return res, nil
}

func (r *Runner) rank(s Scenario, topK int) (ranking, error) {
	switch s.Domain {
	case DomainLodging:
		resp, err := r.lodging.Recommend(r.accommodations, s.Query.accommodationQuery(topK))
		if err != nil {
			return ranking{}, err
		}
		rk := ranking{candidates: resp.TotalCandidates}
		for _, rec := range resp.Recommendations {
			rk.ids = append(rk.ids, rec.ID)
			rk.scores = append(rk.scores, rec.Score)
		}
		return rk, nil
	case DomainGuide:
		resp, err := r.guides.Recommend(r.guidePool, s.Query.guideQuery(topK))
		if err != nil {
			return ranking{}, err
		}
		rk := ranking{candidates: resp.TotalCandidates}
		for _, rec := range resp.Recommendations {
			rk.ids = append(rk.ids, rec.ID)
			rk.scores = append(rk.scores, rec.Score)
		}
		return rk, nil
	default:
		return ranking{}, fmt.Errorf("unknown domain %q", s.Domain)
	}
}

// grades computes graded relevance for every catalog item of the scenario's domain.
func (r *Runner) grades(s Scenario) map[string]float64 {
	out := make(map[string]float64)
	switch s.Domain {
	case DomainLodging:
		for _, a := range r.accommodations {
			out[a.ID] = Relevance(a.Interests, a.Province, a.Rating, s)
		}
	case DomainGuide:
		for _, g := range r.guidePool {
			out[g.ID] = Relevance(g.Expertise, g.Province, g.Rating, s)
		}
	}
	return out
}

func (r *Runner) computeCoverage(summary *EvalSummary, scenarios []Scenario) error {
	catalog := map[Domain]int{
		DomainLodging: len(r.accommodations),
		DomainGuide:   len(r.guidePool),
	}

	for _, k := range evalCutoffs {
		recommended := make(map[Domain][][]string)
		for _, s := range scenarios {
			rk, err := r.rank(s, k)
			if err != nil {
				return fmt.Errorf("coverage for scenario %q: %w", s.ID, err)
			}
			recommended[s.Domain] = append(recommended[s.Domain], rk.ids)
		}

		for domain, lists := range recommended {
			ds := domainSummary(summary, domain)
			cov := Coverage(lists, catalog[domain])
			if k == 5 {
				ds.CoverageAt5 = cov
			} else {
				ds.CoverageAt10 = cov
			}
		}
	}
	return nil
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	ds := domainSummary(s, res.Domain)
	ds.Count++
	ds.AvgPrecisionAt5 += res.PrecisionAt5
	ds.AvgPrecisionAt10 += res.PrecisionAt10
	ds.AvgRecallAt5 += res.RecallAt5
	ds.AvgRecallAt10 += res.RecallAt10
	ds.AvgNDCGAt5 += res.NDCGAt5
	ds.AvgNDCGAt10 += res.NDCGAt10
	ds.MeanAveragePrecision += res.AveragePrecision
	ds.AvgMRRAt10 += res.MRRAt10
	ds.AvgScore += res.AverageScore
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	for _, ds := range s.ByDomain {
		if ds.Count == 0 {
			continue
		}
		n := float64(ds.Count)
		ds.AvgPrecisionAt5 /= n
		ds.AvgPrecisionAt10 /= n
		ds.AvgRecallAt5 /= n
		ds.AvgRecallAt10 /= n
		ds.AvgNDCGAt5 /= n
		ds.AvgNDCGAt10 /= n
		ds.MeanAveragePrecision /= n
		ds.AvgMRRAt10 /= n
		ds.AvgScore /= n
	}
}

func domainSummary(s *EvalSummary, d Domain) *DomainSummary {
	ds, ok := s.ByDomain[d]
	if !ok {
		ds = &DomainSummary{}
		s.ByDomain[d] = ds
	}
	return ds
}
