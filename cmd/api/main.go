package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ceylontrails/travelmatch/internal/adapters/cache"
	"github.com/ceylontrails/travelmatch/internal/adapters/database"
	"github.com/ceylontrails/travelmatch/internal/adapters/fallback"
	"github.com/ceylontrails/travelmatch/internal/api/handlers"
	"github.com/ceylontrails/travelmatch/internal/api/routes"
	"github.com/ceylontrails/travelmatch/internal/application/scoring"
	"github.com/ceylontrails/travelmatch/internal/application/services"
	"github.com/ceylontrails/travelmatch/internal/domain/providers"
	"github.com/ceylontrails/travelmatch/internal/domain/repositories"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/clients/postgres"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/clients/redis"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
	"github.com/ceylontrails/travelmatch/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env, cfg.Server.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	// Engines are validated before any I/O so a bad weight profile fails fast.
	weights := scoring.DefaultWeightProfile()
	if len(cfg.Recommender.LodgingWeights) > 0 {
		weights, err = scoring.NewWeightProfile(cfg.Recommender.LodgingWeights, log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid lodging weights")
		}
	}
	policy, err := scoring.ParseAmenityPolicy(cfg.Recommender.AmenityPolicy)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid amenity policy")
	}
	lodgingEngine := scoring.NewLodgingEngine(weights, policy)
	guideEngine := scoring.NewGuideEngine()

	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, candidate cache disabled")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient.Client())
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	// Live sources stay nil interfaces when no database is reachable; the
	// services then serve the synthetic pool alone.
	var liveAccommodations repositories.AccommodationRepository
	var liveGuides repositories.GuideRepository
	if cfg.Database.Enabled {
		pgClient, err := postgres.NewClient(ctx, &cfg.Database)
		if err != nil {
			log.Warn().Err(err).Msg("PostgreSQL unavailable, serving synthetic candidates only")
		} else {
			defer pgClient.Close()
			log.Info().Str("host", cfg.Database.Host).Msg("PostgreSQL client initialized")

			breaker := database.DefaultBreakerSettings()
			accAdapter := database.NewBreakerAccommodationAdapter(database.NewAccommodationAdapter(pgClient, metrics), breaker)
			guideAdapter := database.NewBreakerGuideAdapter(database.NewGuideAdapter(pgClient, metrics), breaker)
			if cacheProvider != nil {
				ttl := cfg.Recommender.CandidateCacheTTLSeconds
				liveAccommodations = database.NewCachedAccommodationAdapter(accAdapter, cacheProvider, ttl, metrics)
				liveGuides = database.NewCachedGuideAdapter(guideAdapter, cacheProvider, ttl, metrics)

				warmer := services.NewCacheWarmingService(liveAccommodations, liveGuides,
					[]repositories.CandidateFilter{{BudgetMin: 1000, BudgetMax: 50000}},
					[]repositories.CandidateFilter{{BudgetMin: 2000, BudgetMax: 20000}},
				)
				warmer.StartPeriodicWarming(ctx, time.Duration(cfg.Recommender.CacheWarmIntervalSeconds)*time.Second)
			} else {
				liveAccommodations = accAdapter
				liveGuides = guideAdapter
			}
		}
	}

	syntheticAccommodations, err := fallback.LoadAccommodations(cfg.Recommender.AccommodationFallback)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Recommender.AccommodationFallback).Msg("failed to load accommodation fallback")
	}
	syntheticGuides, err := fallback.LoadGuides(cfg.Recommender.GuideFallback)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.Recommender.GuideFallback).Msg("failed to load guide fallback")
	}
	log.Info().
		Int("accommodations", syntheticAccommodations.Len()).
		Int("guides", syntheticGuides.Len()).
		Msg("synthetic candidate pools loaded")

	accommodationService := services.NewAccommodationRecommendationService(
		liveAccommodations,
		syntheticAccommodations,
		lodgingEngine,
		cfg.Recommender.MinLiveCandidates,
		metrics,
	)
	guideService := services.NewGuideRecommendationService(
		liveGuides,
		syntheticGuides,
		guideEngine,
		cfg.Recommender.MinLiveCandidates,
		metrics,
	)

	recommendationHandler := handlers.NewRecommendationHandler(accommodationService, guideService, cfg.Recommender.DefaultTopK)
	router := routes.NewRouter(recommendationHandler, metrics)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	log.Info().Msg("server stopped")
}
