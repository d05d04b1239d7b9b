package handler

import (
	"log/slog"
	"net/http"

	"github.com/GoDakar/CarRentApp/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// FavoriteHandler serves the favorites endpoints.
type FavoriteHandler struct {
	favoriteUseCase usecase.FavoriteUseCase
	logger          *slog.Logger
}

func NewFavoriteHandler(uc usecase.FavoriteUseCase, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{favoriteUseCase: uc, logger: logger}
}

// ToggleFavorite handles POST /cars/{slug}/favorite. The response tells the
// client which way the toggle went plus the car's new favorite count.
func (h *FavoriteHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}
	slug := chi.URLParam(r, "slug")

	status, count, err := h.favoriteUseCase.ToggleFavorite(r.Context(), principal, slug)
	if err != nil {
		h.logger.Error("failed to toggle favorite", "slug", slug, "user_id", principal.UserID, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	h.logger.Info("favorite toggled", "slug", slug, "user_id", principal.UserID, "status", status)
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status": status,
		"count":  count,
	}, h.logger)
}

// ListFavoriteCars handles GET /my/favorites.
func (h *FavoriteHandler) ListFavoriteCars(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	cars, err := h.favoriteUseCase.ListFavoriteCars(r.Context(), principal)
	if err != nil {
		h.logger.Error("failed to list favorites", "user_id", principal.UserID, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, cars, h.logger)
}
