package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/GoDakar/CarRentApp/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Submissions carry up to six photos; 32 MB of multipart memory is plenty.
const maxMultipartMemory = 32 << 20

// CarHandler serves the listing endpoints.
type CarHandler struct {
	carUseCase    usecase.CarUseCase
	uploadLimiter chan struct{}
	logger        *slog.Logger
}

func NewCarHandler(uc usecase.CarUseCase, limiter chan struct{}, logger *slog.Logger) *CarHandler {
	return &CarHandler{
		carUseCase:    uc,
		uploadLimiter: limiter,
		logger:        logger,
	}
}

// photoMeta is one entry of the "photos" form field. File names the multipart
// file part holding the image bytes for new photos.
type photoMeta struct {
	ID      string `json:"id"`
	Caption string `json:"caption"`
	IsCover bool   `json:"is_cover"`
	Order   int    `json:"order"`
	Delete  bool   `json:"delete"`
	File    string `json:"file"`
}

// parseCarForm decodes a listing submission: a "payload" field with the car
// JSON, a "photos" field with the batch metadata, and one file part per new
// photo.
func parseCarForm(r *http.Request) (usecase.CarInput, []domain.PhotoInput, error) {
	var input usecase.CarInput

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		return input, nil, err
	}

	if err := json.Unmarshal([]byte(r.FormValue("payload")), &input); err != nil {
		return input, nil, err
	}

	var metas []photoMeta
	if raw := r.FormValue("photos"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &metas); err != nil {
			return input, nil, err
		}
	}

	photos := make([]domain.PhotoInput, 0, len(metas))
	for _, meta := range metas {
		photo := domain.PhotoInput{
			Caption: meta.Caption,
			IsCover: meta.IsCover,
			Order:   meta.Order,
			Delete:  meta.Delete,
		}
		if meta.ID != "" {
			id, err := uuid.Parse(meta.ID)
			if err != nil {
				return input, nil, err
			}
			photo.ID = id
		}
		if meta.File != "" {
			file, header, err := r.FormFile(meta.File)
			if err != nil {
				return input, nil, err
			}
			photo.File = &domain.PhotoFile{
				Reader:      file,
				Filename:    header.Filename,
				ContentType: header.Header.Get("Content-Type"),
			}
		}
		photos = append(photos, photo)
	}

	return input, photos, nil
}

// CreateCar handles POST /cars.
func (h *CarHandler) CreateCar(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	input, photos, err := parseCarForm(r)
	if err != nil {
		h.logger.Warn("malformed listing submission", "error", err)
		respondWithError(w, http.StatusBadRequest, "malformed listing submission", h.logger)
		return
	}

	// Throttle concurrent photo uploads across all requests.
	h.uploadLimiter <- struct{}{}
	defer func() { <-h.uploadLimiter }()

	car, err := h.carUseCase.CreateCar(r.Context(), principal, input, photos)
	if err != nil {
		h.logger.Error("failed to create listing", "user_id", principal.UserID, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	h.logger.Info("listing created", "car_id", car.ID, "slug", car.Slug)
	respondWithJSON(w, http.StatusCreated, car, h.logger)
}

// UpdateCar handles PUT /cars/{slug}.
func (h *CarHandler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}
	slug := chi.URLParam(r, "slug")

	input, photos, err := parseCarForm(r)
	if err != nil {
		h.logger.Warn("malformed listing submission", "slug", slug, "error", err)
		respondWithError(w, http.StatusBadRequest, "malformed listing submission", h.logger)
		return
	}

	h.uploadLimiter <- struct{}{}
	defer func() { <-h.uploadLimiter }()

	car, err := h.carUseCase.UpdateCar(r.Context(), principal, slug, input, photos)
	if err != nil {
		h.logger.Error("failed to update listing", "slug", slug, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	h.logger.Info("listing updated", "car_id", car.ID, "slug", car.Slug)
	respondWithJSON(w, http.StatusOK, car, h.logger)
}

// DeleteCar handles DELETE /cars/{slug}.
func (h *CarHandler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}
	slug := chi.URLParam(r, "slug")

	if err := h.carUseCase.DeleteCar(r.Context(), principal, slug); err != nil {
		h.logger.Error("failed to delete listing", "slug", slug, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	h.logger.Info("listing deleted", "slug", slug)
	w.WriteHeader(http.StatusNoContent)
}

// GetCarDetail handles GET /cars/{slug}.
func (h *CarHandler) GetCarDetail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	detail, err := h.carUseCase.GetCarDetail(r.Context(), slug)
	if err != nil {
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, detail, h.logger)
}

// ListCars handles GET /cars with optional body_type, region and page query
// parameters. The page size is fixed server-side.
func (h *CarHandler) ListCars(w http.ResponseWriter, r *http.Request) {
	filter := domain.CarFilter{
		BodyType: domain.BodyType(r.URL.Query().Get("body_type")),
		Region:   domain.Region(r.URL.Query().Get("region")),
	}
	filter.Page, _ = strconv.Atoi(r.URL.Query().Get("page"))

	cars, err := h.carUseCase.ListCars(r.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list cars", "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, cars, h.logger)
}

// ListMyCars handles GET /my/cars, the owner's dashboard feed.
func (h *CarHandler) ListMyCars(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "authentication required", h.logger)
		return
	}

	cars, err := h.carUseCase.ListCars(r.Context(), domain.CarFilter{OwnerID: principal.UserID})
	if err != nil {
		h.logger.Error("failed to list own cars", "user_id", principal.UserID, "error", err)
		respondWithUseCaseError(w, err, h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, cars, h.logger)
}
