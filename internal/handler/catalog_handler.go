package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/GoDakar/CarRentApp/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves the browse surface: home feed, listing form options
// and the brand/model dependent select.
type CatalogHandler struct {
	catalogUseCase usecase.CatalogUseCase
	logger         *slog.Logger
}

func NewCatalogHandler(uc usecase.CatalogUseCase, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: uc, logger: logger}
}

// Home handles GET /home.
func (h *CatalogHandler) Home(w http.ResponseWriter, r *http.Request) {
	feed, err := h.catalogUseCase.Home(r.Context())
	if err != nil {
		h.logger.Error("failed to build home feed", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, feed, h.logger)
}

// FormOptions handles GET /form-options.
func (h *CatalogHandler) FormOptions(w http.ResponseWriter, r *http.Request) {
	options, err := h.catalogUseCase.FormOptions(r.Context())
	if err != nil {
		h.logger.Error("failed to load form options", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, options, h.logger)
}

// ListModelsByBrand handles GET /brands/{brandID}/models, backing the
// dependent model select of the listing form.
func (h *CatalogHandler) ListModelsByBrand(w http.ResponseWriter, r *http.Request) {
	brandID, err := strconv.ParseInt(chi.URLParam(r, "brandID"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid brand id", h.logger)
		return
	}

	models, err := h.catalogUseCase.ListModelsByBrand(r.Context(), brandID)
	if err != nil {
		h.logger.Error("failed to list models", "brand_id", brandID, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, models, h.logger)
}

// SaveCity handles POST /cities. Staff only.
func (h *CatalogHandler) SaveCity(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var city domain.City
	if err := json.NewDecoder(r.Body).Decode(&city); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed city payload", h.logger)
		return
	}

	if err := h.catalogUseCase.SaveCity(r.Context(), principal, &city); err != nil {
		h.logger.Error("failed to save city", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, city, h.logger)
}

// SavePlace handles POST /places. Staff only.
func (h *CatalogHandler) SavePlace(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var place domain.Place
	if err := json.NewDecoder(r.Body).Decode(&place); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed place payload", h.logger)
		return
	}

	if err := h.catalogUseCase.SavePlace(r.Context(), principal, &place); err != nil {
		h.logger.Error("failed to save place", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, place, h.logger)
}

// SaveFeature handles POST /features. Staff only.
func (h *CatalogHandler) SaveFeature(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var feature domain.CarFeature
	if err := json.NewDecoder(r.Body).Decode(&feature); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed feature payload", h.logger)
		return
	}

	if err := h.catalogUseCase.SaveFeature(r.Context(), principal, &feature); err != nil {
		h.logger.Error("failed to save feature", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, feature, h.logger)
}
