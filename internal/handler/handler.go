package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/GoDakar/CarRentApp/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// respondWithJSON sends a JSON response to the client.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError sends a JSON error response.
func respondWithError(w http.ResponseWriter, code int, message string, logger *slog.Logger) {
	respondWithJSON(w, code, map[string]string{"error": message}, logger)
}

// respondWithUseCaseError maps domain and validation errors onto HTTP status
// codes. Field validation failures come back as a per-field error object so
// the form can attribute each message.
func respondWithUseCaseError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{"errors": fieldErrs}, logger)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondWithError(w, http.StatusNotFound, "not found", logger)
	case errors.Is(err, domain.ErrForbidden):
		respondWithError(w, http.StatusForbidden, "forbidden", logger)
	case errors.Is(err, domain.ErrOwnFavorite):
		respondWithError(w, http.StatusBadRequest, "you cannot favorite your own listing", logger)
	case errors.Is(err, domain.ErrConflict):
		respondWithError(w, http.StatusConflict, "conflict", logger)
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error", logger)
	}
}
