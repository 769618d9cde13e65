package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ceylontrails/travelmatch/internal/infrastructure/observability"
	apperrors "github.com/ceylontrails/travelmatch/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		observability.GetLogger().Error().Err(err).Msg("failed to encode response")
	}
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps validation faults to 400 and everything else to 500.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	if apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		respondWithError(w, http.StatusBadRequest, messageOf(err))
		return
	}

	observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("recommendation failed")
	respondWithError(w, http.StatusInternalServerError, messageOf(err))
}

func messageOf(err error) string {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Err == nil {
		return appErr.Message
	}
	return err.Error()
}
