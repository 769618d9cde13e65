package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/ceylontrails/travelmatch/internal/adapters/fallback"
	"github.com/ceylontrails/travelmatch/internal/application/scoring"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
	"github.com/ceylontrails/travelmatch/internal/evaluation"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
	"github.com/ceylontrails/travelmatch/internal/synthetic"
	"github.com/ceylontrails/travelmatch/pkg/config"
)

// report pairs each weight profile with its evaluation summary.
type report struct {
	Profiles map[string]*evaluation.EvalSummary `json:"profiles"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	scenariosPath := flag.String("scenarios", "config/evaluation_scenarios.json", "scenario file")
	accPath := flag.String("accommodations", cfg.Recommender.AccommodationFallback, "accommodation catalog (JSON)")
	guidePath := flag.String("guides", cfg.Recommender.GuideFallback, "guide catalog (JSON)")
	weightsFlag := flag.String("weights", "", "comma-separated lodging weights to compare against the defaults")
	policyFlag := flag.String("amenity-policy", cfg.Recommender.AmenityPolicy, "soft or strict")
	generate := flag.Int("generate", 0, "generate N synthetic records per domain instead of reading catalogs")
	seed := flag.Uint64("seed", 42, "seed for -generate")
	flag.Parse()

	observability.InitLogger("travelmatch-evaluate", "development", "info")

	if _, err := os.Stat("backend/" + *scenariosPath); err == nil {
		*scenariosPath = "backend/" + *scenariosPath
	}
	scenarios, err := evaluation.LoadScenarios(*scenariosPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load scenarios")
	}
	if err := evaluation.ValidateScenarios(scenarios); err != nil {
		log.Fatal().Err(err).Msg("invalid scenarios")
	}

	ctx := context.Background()
	stays, guides, err := loadCatalogs(ctx, *accPath, *guidePath, *generate, *seed)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalogs")
	}
	log.Info().Int("accommodations", len(stays)).Int("guides", len(guides)).Msg("catalogs loaded")

	policy, err := scoring.ParseAmenityPolicy(*policyFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid amenity policy")
	}

	profiles := map[string]scoring.WeightProfile{"default": scoring.DefaultWeightProfile()}
	if *weightsFlag != "" {
		values, err := config.ParseFloatList(*weightsFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -weights")
		}
		custom, err := scoring.NewWeightProfile(values, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid -weights")
		}
		profiles["custom"] = custom
	}

	out := report{Profiles: make(map[string]*evaluation.EvalSummary, len(profiles))}
	for name, weights := range profiles {
		runner := evaluation.NewRunner(scoring.NewLodgingEngine(weights, policy), scoring.NewGuideEngine(), stays, guides)
		summary, err := runner.Run(ctx, scenarios)
		if err != nil {
			log.Fatal().Err(err).Str("profile", name).Msg("evaluation failed")
		}
		out.Profiles[name] = summary
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("failed to write report")
	}
}

func loadCatalogs(ctx context.Context, accPath, guidePath string, generate int, seed uint64) ([]*entities.Accommodation, []*entities.Guide, error) {
	var accStore *fallback.AccommodationStore
	var guideStore *fallback.GuideStore

	if generate > 0 {
		gen := synthetic.New(seed)
		accStore = fallback.NewAccommodationStore(gen.Accommodations(generate))
		guideStore = fallback.NewGuideStore(gen.Guides(generate))
	} else {
		var err error
		if accStore, err = fallback.LoadAccommodations(accPath); err != nil {
			return nil, nil, err
		}
		if guideStore, err = fallback.LoadGuides(guidePath); err != nil {
			return nil, nil, err
		}
	}

	stays, err := accStore.ListCandidates(ctx, repositories.CandidateFilter{})
	if err != nil {
		return nil, nil, err
	}
	guides, err := guideStore.ListCandidates(ctx, repositories.CandidateFilter{})
	if err != nil {
		return nil, nil, err
	}
	return stays, guides, nil
}
