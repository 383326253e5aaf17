package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirdesai22/hackathon-docsync/internal/apperrors"
	"github.com/sirdesai22/hackathon-docsync/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error().Err(err).Msg("❌ Failed to encode response")
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, map[string]any{"success": true, "data": data})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrDocStoreUnavailable), errors.Is(err, apperrors.ErrSearchDisabled):
		return http.StatusServiceUnavailable
	case apperrors.IsNotFound(err):
		return http.StatusNotFound
	case apperrors.IsConflict(err):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidTicketType), errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("❌ Request failed")
	}
	writeJSON(w, status, map[string]any{"success": false, "error": err.Error()})
}
