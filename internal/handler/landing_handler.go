package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/GoDakar/CarRentApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// LandingHandler serves the SEO landing page endpoints. Mutations are staff
// only; the use case enforces that.
type LandingHandler struct {
	landingUseCase usecase.LandingUseCase
	logger         *slog.Logger
}

func NewLandingHandler(uc usecase.LandingUseCase, logger *slog.Logger) *LandingHandler {
	return &LandingHandler{landingUseCase: uc, logger: logger}
}

// CreateLandingPage handles POST /landing-pages.
func (h *LandingHandler) CreateLandingPage(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	var input usecase.LandingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed landing page payload", h.logger)
		return
	}

	page, err := h.landingUseCase.CreateLandingPage(r.Context(), principal, input)
	if err != nil {
		h.logger.Error("failed to create landing page", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	h.logger.Info("landing page created", "page_id", page.ID, "slug", page.Slug)
	respondWithJSON(w, http.StatusCreated, page, h.logger)
}

// UpdateLandingPage handles PUT /landing-pages/{id}.
func (h *LandingHandler) UpdateLandingPage(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid landing page id", h.logger)
		return
	}

	var input usecase.LandingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed landing page payload", h.logger)
		return
	}

	page, err := h.landingUseCase.UpdateLandingPage(r.Context(), principal, id, input)
	if err != nil {
		h.logger.Error("failed to update landing page", "page_id", id, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	h.logger.Info("landing page updated", "page_id", page.ID, "slug", page.Slug)
	respondWithJSON(w, http.StatusOK, page, h.logger)
}

// DeleteLandingPage handles DELETE /landing-pages/{id}.
func (h *LandingHandler) DeleteLandingPage(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid landing page id", h.logger)
		return
	}

	if err := h.landingUseCase.DeleteLandingPage(r.Context(), principal, id); err != nil {
		h.logger.Error("failed to delete landing page", "page_id", id, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	h.logger.Info("landing page deleted", "page_id", id)
	w.WriteHeader(http.StatusNoContent)
}

// GetLandingPage handles GET /landing-pages/{slug}.
func (h *LandingHandler) GetLandingPage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	page, err := h.landingUseCase.GetLandingPage(r.Context(), slug)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, page, h.logger)
}

// ListLandingPages handles GET /landing-pages.
func (h *LandingHandler) ListLandingPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.landingUseCase.ListLandingPages(r.Context(), true)
	if err != nil {
		h.logger.Error("failed to list landing pages", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, pages, h.logger)
}
