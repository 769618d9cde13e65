package routes

import (
	"net/http"

	"github.com/ceylontrails/travelmatch/internal/api/handlers"
	"github.com/ceylontrails/travelmatch/internal/api/middleware"
	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	metrics               *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(recommendationHandler *handlers.RecommendationHandler, metrics *observability.Metrics) *Router {
	return &Router{
		mux:                   http.NewServeMux(),
		recommendationHandler: recommendationHandler,
		metrics:               metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", handlers.Health)

	r.mux.HandleFunc("POST /api/recommendations/accommodations", r.recommendationHandler.RecommendAccommodations)
	r.mux.HandleFunc("POST /api/recommendations/guides", r.recommendationHandler.RecommendGuides)

	// Deprecated: kept for clients of the first guide matching release.
	r.mux.HandleFunc("POST /api/match/guides", r.recommendationHandler.RecommendGuides)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.Compression(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
