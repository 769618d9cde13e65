package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylontrails/travelmatch/internal/api/handlers"
	"github.com/ceylontrails/travelmatch/internal/domain/entities"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

type stubAccommodationRecommender struct {
	got  *entities.AccommodationQuery
	resp *entities.AccommodationResponse
	err  error
}

func (s *stubAccommodationRecommender) Recommend(_ context.Context, q entities.AccommodationQuery) (*entities.AccommodationResponse, error) {
	s.got = &q
	if s.err != nil {
		return nil, s.err
	}
	if s.resp != nil {
		return s.resp, nil
	}
	return &entities.AccommodationResponse{Recommendations: []entities.AccommodationRecommendation{}}, nil
}

type stubGuideRecommender struct {
	got *entities.GuideQuery
	err error
}

func (s *stubGuideRecommender) Recommend(_ context.Context, q entities.GuideQuery) (*entities.GuideResponse, error) {
	s.got = &q
	if s.err != nil {
		return nil, s.err
	}
	return &entities.GuideResponse{
		Recommendations: []entities.GuideRecommendation{{ID: "g1", Name: "Nimal", Score: 0.812}},
		TotalCandidates: 1,
		FiltersApplied:  []string{"Budget: 2000-20000 LKR/day"},
	}, nil
}

func post(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body["error"]
}

func TestRecommendAccommodations_AppliesDefaults(t *testing.T) {
	acc := &stubAccommodationRecommender{}
	h := handlers.NewRecommendationHandler(acc, &stubGuideRecommender{}, 10)

	w := post(t, h.RecommendAccommodations, "/api/recommendations/accommodations", `{}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, acc.got)
	assert.Equal(t, 1000.0, acc.got.BudgetMin)
	assert.Equal(t, 50000.0, acc.got.BudgetMax)
	assert.Equal(t, 1, acc.got.GroupSize)
	assert.Equal(t, "any", acc.got.AccommodationType)
	assert.Equal(t, 10, acc.got.TopK)
	assert.False(t, acc.got.CityOnly)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestRecommendAccommodations_MapsRequestFields(t *testing.T) {
	acc := &stubAccommodationRecommender{}
	h := handlers.NewRecommendationHandler(acc, &stubGuideRecommender{}, 10)

	body := `{"budget_min":0,"budget_max":8000,"required_amenities":["WiFi"],"interests":["beach"],
		"travel_style":"relaxed","group_size":0,"accommodation_type":"Villa","district":" Galle ",
		"province":"Southern","city_only":true,"top_k":3}`
	w := post(t, h.RecommendAccommodations, "/api/recommendations/accommodations", body)

	require.Equal(t, http.StatusOK, w.Code)
	q := acc.got
	assert.Equal(t, 0.0, q.BudgetMin)
	assert.Equal(t, 8000.0, q.BudgetMax)
	assert.Equal(t, []string{"WiFi"}, q.RequiredAmenities)
	assert.Equal(t, 0, q.GroupSize)
	assert.Equal(t, "Villa", q.AccommodationType)
	assert.Equal(t, "Galle", q.City)
	assert.Equal(t, "Southern", q.Province)
	assert.True(t, q.CityOnly)
	assert.Equal(t, 3, q.TopK)
}

func TestRecommendAccommodations_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantMsg string
	}{
		{"empty body", ``, "request body is required"},
		{"malformed json", `{"budget_min":`, "invalid request body"},
		{"wrong type", `{"group_size":"two"}`, "invalid request body"},
		{"negative group", `{"group_size":-1}`, "group_size must be at least 0"},
		{"top_k too large", `{"top_k":500}`, "top_k must be at most 100"},
		{"top_k zero", `{"top_k":0}`, "top_k must be at least 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &stubAccommodationRecommender{}
			h := handlers.NewRecommendationHandler(acc, &stubGuideRecommender{}, 10)

			w := post(t, h.RecommendAccommodations, "/api/recommendations/accommodations", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, errorMessage(t, w), tt.wantMsg)
			assert.Nil(t, acc.got)
		})
	}
}

func TestRecommendAccommodations_InternalFault(t *testing.T) {
	acc := &stubAccommodationRecommender{
		err: apperrors.NewInternalError(`cannot score accommodation "a1"`, errors.New("malformed candidate record")),
	}
	h := handlers.NewRecommendationHandler(acc, &stubGuideRecommender{}, 10)

	w := post(t, h.RecommendAccommodations, "/api/recommendations/accommodations", `{}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, errorMessage(t, w), "malformed candidate record")
}

func TestRecommendAccommodations_ServiceValidationError(t *testing.T) {
	acc := &stubAccommodationRecommender{err: apperrors.NewValidationError("budget is invalid")}
	h := handlers.NewRecommendationHandler(acc, &stubGuideRecommender{}, 10)

	w := post(t, h.RecommendAccommodations, "/api/recommendations/accommodations", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "budget is invalid", errorMessage(t, w))
}

func TestRecommendGuides_DefaultsLanguageWhenAbsent(t *testing.T) {
	guides := &stubGuideRecommender{}
	h := handlers.NewRecommendationHandler(&stubAccommodationRecommender{}, guides, 7)

	w := post(t, h.RecommendGuides, "/api/recommendations/guides", `{"city":"Kandy"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"English"}, guides.got.Languages)
	assert.Equal(t, 2000.0, guides.got.BudgetMin)
	assert.Equal(t, 20000.0, guides.got.BudgetMax)
	assert.Equal(t, 7, guides.got.TopK)
	assert.Equal(t, "Kandy", guides.got.City)

	var resp entities.GuideResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, 1, resp.TotalCandidates)
	assert.Equal(t, "g1", resp.Recommendations[0].ID)
}

func TestRecommendGuides_EmptyLanguagesRejected(t *testing.T) {
	guides := &stubGuideRecommender{}
	h := handlers.NewRecommendationHandler(&stubAccommodationRecommender{}, guides, 10)

	w := post(t, h.RecommendGuides, "/api/match/guides", `{"languages":[]}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "languages must not be empty", errorMessage(t, w))
	assert.Nil(t, guides.got)
}

func TestRecommendGuides_BlankLanguagesRejected(t *testing.T) {
	for _, body := range []string{
		`{"languages":[""]}`,
		`{"languages":[" ", "\t"]}`,
		`{"languages":[null]}`,
	} {
		t.Run(body, func(t *testing.T) {
			guides := &stubGuideRecommender{}
			h := handlers.NewRecommendationHandler(&stubAccommodationRecommender{}, guides, 10)

			w := post(t, h.RecommendGuides, "/api/recommendations/guides", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "languages must not be empty", errorMessage(t, w))
			assert.Nil(t, guides.got)
		})
	}
}

func TestRecommendGuides_TrimsLanguages(t *testing.T) {
	guides := &stubGuideRecommender{}
	h := handlers.NewRecommendationHandler(&stubAccommodationRecommender{}, guides, 10)

	w := post(t, h.RecommendGuides, "/api/recommendations/guides", `{"languages":[" Sinhala ", ""]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Sinhala"}, guides.got.Languages)
}

func TestRecommendGuides_PassesPreferences(t *testing.T) {
	guides := &stubGuideRecommender{}
	h := handlers.NewRecommendationHandler(&stubAccommodationRecommender{}, guides, 10)

	body := `{"languages":["Sinhala","German"],"expertise":["wildlife"],"gender_preference":"female","city_only":true,"city":"Ella","budget_max":9000}`
	w := post(t, h.RecommendGuides, "/api/recommendations/guides", body)

	require.Equal(t, http.StatusOK, w.Code)
	q := guides.got
	assert.Equal(t, []string{"Sinhala", "German"}, q.Languages)
	assert.Equal(t, []string{"wildlife"}, q.Expertise)
	assert.Equal(t, "female", q.GenderPreference)
	assert.True(t, q.CityOnly)
	assert.Equal(t, 9000.0, q.BudgetMax)
	assert.Equal(t, 2000.0, q.BudgetMin)
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	handlers.Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
