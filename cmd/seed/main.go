package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ceylontrails/travelmatch/internal/adapters/cache"
	"github.com/ceylontrails/travelmatch/internal/adapters/database"
	"github.com/ceylontrails/travelmatch/internal/adapters/fallback"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/clients/postgres"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/clients/redis"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
	"github.com/ceylontrails/travelmatch/internal/synthetic"
	"github.com/ceylontrails/travelmatch/pkg/config"
)

func main() {
	outDir := flag.String("out-dir", "data", "directory for mock_accommodations.json and mock_guides.json")
	count := flag.Int("count", 1000, "records per domain written to the fallback files")
	seed := flag.Uint64("seed", 42, "generator seed")
	toDB := flag.Bool("db", false, "also insert a live batch into PostgreSQL")
	dbCount := flag.Int("db-count", 50, "records per domain inserted with -db")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	observability.InitLogger("travelmatch-seed", "development", cfg.Server.LogLevel)

	gen := synthetic.New(*seed)
	accommodations := gen.Accommodations(*count)
	guides := gen.Guides(*count)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", *outDir).Msg("failed to create output directory")
	}
	accPath := filepath.Join(*outDir, "mock_accommodations.json")
	guidePath := filepath.Join(*outDir, "mock_guides.json")
	if err := fallback.WriteJSON(accPath, accommodations); err != nil {
		log.Fatal().Err(err).Msg("failed to write accommodations")
	}
	if err := fallback.WriteJSON(guidePath, guides); err != nil {
		log.Fatal().Err(err).Msg("failed to write guides")
	}
	log.Info().Str("accommodations", accPath).Str("guides", guidePath).Int("count", *count).Msg("fallback pools written")

	if !*toDB {
		return
	}

	ctx := context.Background()
	if err := seedDatabase(ctx, cfg, synthetic.New(*seed+1), *dbCount); err != nil {
		log.Fatal().Err(err).Msg("database seeding failed")
	}
}

// seedDatabase inserts a batch distinct from the fallback files so the live
// and synthetic pools do not share ids, then drops stale cached candidate lists.
func seedDatabase(ctx context.Context, cfg *config.Config, gen *synthetic.Generator, n int) error {
	pgClient, err := postgres.NewClient(ctx, &cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	if err := database.EnsureSchema(ctx, pgClient); err != nil {
		return err
	}

	accommodations := toPointers(gen.Accommodations(n))
	guides := toPointers(gen.Guides(n))
	if err := database.NewAccommodationAdapter(pgClient, nil).Insert(ctx, accommodations); err != nil {
		return err
	}
	if err := database.NewGuideAdapter(pgClient, nil).Insert(ctx, guides); err != nil {
		return err
	}
	log.Info().Int("accommodations", len(accommodations)).Int("guides", len(guides)).Msg("live store seeded")

	if !cfg.Redis.Enabled {
		return nil
	}
	redisClient, err := redis.NewClient(ctx, &cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, cached candidate lists expire on their own")
		return nil
	}
	defer redisClient.Close()

	cacheProvider := cache.NewRedisAdapter(redisClient.Client())
	for _, ns := range []string{database.AccommodationCacheNamespace, database.GuideCacheNamespace} {
		if err := cacheProvider.DeletePattern(ctx, database.CandidateCachePattern(ns)); err != nil {
			log.Warn().Err(err).Str("namespace", ns).Msg("failed to invalidate candidate cache")
		}
	}
	return nil
}

func toPointers[T entities.Accommodation | entities.Guide](items []T) []*T {
	out := make([]*T, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out
}
