package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ceylontrails/travelmatch/internal/application/scoring"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
)

const maxRequestBodyBytes = 1 << 20

// AccommodationRecommender ranks lodging candidates for a query.
type AccommodationRecommender interface {
	Recommend(ctx context.Context, q entities.AccommodationQuery) (*entities.AccommodationResponse, error)
}

// GuideRecommender ranks guide candidates for a query.
type GuideRecommender interface {
	Recommend(ctx context.Context, q entities.GuideQuery) (*entities.GuideResponse, error)
}

// RecommendationHandler handles recommendation HTTP requests
type RecommendationHandler struct {
	accommodations AccommodationRecommender
	guides         GuideRecommender
	defaultTopK    int
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(accommodations AccommodationRecommender, guides GuideRecommender, defaultTopK int) *RecommendationHandler {
	if defaultTopK <= 0 {
		defaultTopK = scoring.DefaultTopK
	}
	return &RecommendationHandler{
		accommodations: accommodations,
		guides:         guides,
		defaultTopK:    defaultTopK,
	}
}

// RecommendAccommodations handles POST /api/recommendations/accommodations
func (h *RecommendationHandler) RecommendAccommodations(w http.ResponseWriter, r *http.Request) {
	var req AccommodationRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := req.ToQuery(h.defaultTopK)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	resp, err := h.accommodations.Recommend(r.Context(), q)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// RecommendGuides handles POST /api/recommendations/guides and the
// older POST /api/match/guides alias.
func (h *RecommendationHandler) RecommendGuides(w http.ResponseWriter, r *http.Request) {
	var req GuideRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	q, err := req.ToQuery(h.defaultTopK)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	resp, err := h.guides.Recommend(r.Context(), q)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return errors.New("invalid request body: " + err.Error())
	}
	return nil
}
