package usecase

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/GoDakar/CarRentApp/internal/core/ports"
	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/GoDakar/CarRentApp/internal/messaging/payloads"
	"github.com/GoDakar/CarRentApp/internal/slug"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// catalogPageSize is the fixed number of listings per catalog page.
const catalogPageSize = 12

// carInteractor implements CarUseCase.
type carInteractor struct {
	cars        ports.CarStorage
	catalog     ports.CatalogStorage
	fileStorage ports.FileStorage
	publisher   ports.ListingEventPublisher
	slugs       *slug.Generator
	logger      *slog.Logger
}

/// NewCarUseCase wires the listing write path: validation, slug assignment,
// photo reconciliation, persistence and event publication.
func NewCarUseCase(
	cars ports.CarStorage,
	catalog ports.CatalogStorage,
	fileStorage ports.FileStorage,
	publisher ports.ListingEventPublisher,
	logger *slog.Logger,
) CarUseCase {
	return &carInteractor{
		cars:        cars,
		catalog:     catalog,
		fileStorage: fileStorage,
		publisher:   publisher,
		slugs:       slug.NewListingGenerator(cars),
		logger:      logger,
	}
}

func (uc *carInteractor) CreateCar(ctx context.Context, principal domain.Principal, input CarInput, photos []domain.PhotoInput) (*domain.Car, error) {
	car := domain.NewCar()
	car.OwnerID = principal.UserID
	applyCarInput(car, input)

	model, err := uc.resolveModel(ctx, car.ModelID)
	if err != nil {
		return nil, err
	}

	if err := mergeFieldErrors(ValidateCar(car, model), uc.checkPlace(ctx, car.PlaceID), ValidatePhotoBatch(nil, photos)); err != nil {
		return nil, err
	}

	base := slugBase(car, model)
	car.Slug, err = uc.slugs.Generate(ctx, base, car.ID)
	if err != nil {
		return nil, fmt.Errorf("assigning listing slug: %w", err)
	}

	if err := uc.uploadNewPhotos(ctx, car.ID, photos); err != nil {
		return nil, err
	}

	plan := BuildPhotoPlan(car.ID, nil, photos)
	if err := uc.cars.CreateCar(ctx, car, input.FeatureIDs, plan); err != nil {
		return nil, fmt.Errorf("persisting listing: %w", err)
	}

	uc.logger.Info("listing created",
		"car_id", car.ID,
		"slug", car.Slug,
		"owner_id", car.OwnerID,
		"photos", len(plan.Upserts),
	)
	uc.publish(ctx, payloads.ListingCreated, car)
	return car, nil
}

func (uc *carInteractor) UpdateCar(ctx context.Context, principal domain.Principal, slugID string, input CarInput, photos []domain.PhotoInput) (*domain.Car, error) {
	car, err := uc.cars.GetCarBySlug(ctx, slugID, false)
	if err != nil {
		return nil, err
	}
	if !principal.CanMutate(car.OwnerID) {
		return nil, domain.ErrForbidden
	}

	applyCarInput(car, input)

	model, err := uc.resolveModel(ctx, car.ModelID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.cars.PhotosByCar(ctx, car.ID)
	if err != nil {
		return nil, fmt.Errorf("loading current photo set: %w", err)
	}

	if err := mergeFieldErrors(ValidateCar(car, model), uc.checkPlace(ctx, car.PlaceID), ValidatePhotoBatch(existing, photos)); err != nil {
		return nil, err
	}

	if err := uc.uploadNewPhotos(ctx, car.ID, photos); err != nil {
		return nil, err
	}

	plan := BuildPhotoPlan(car.ID, existing, photos)
	if err := uc.cars.UpdateCar(ctx, car, input.FeatureIDs, plan); err != nil {
		return nil, fmt.Errorf("persisting listing update: %w", err)
	}

	uc.removeBlobs(ctx, plan.RemovedKeys)

	uc.logger.Info("listing updated", "car_id", car.ID, "slug", car.Slug)
	uc.publish(ctx, payloads.ListingUpdated, car)
	return car, nil
}

func (uc *carInteractor) DeleteCar(ctx context.Context, principal domain.Principal, slugID string) error {
	car, err := uc.cars.GetCarBySlug(ctx, slugID, false)
	if err != nil {
		return err
	}
	// Deletion is owner only; staff moderate via deactivation instead.
	if principal.UserID != car.OwnerID {
		return domain.ErrForbidden
	}

	keys, err := uc.cars.DeleteCar(ctx, car.ID)
	if err != nil {
		return fmt.Errorf("deleting listing: %w", err)
	}

	uc.removeBlobs(ctx, keys)

	uc.logger.Info("listing deleted", "car_id", car.ID, "slug", car.Slug)
	uc.publish(ctx, payloads.ListingDeleted, car)
	return nil
}

func (uc *carInteractor) GetCarDetail(ctx context.Context, slugID string) (*CarDetail, error) {
	car, err := uc.cars.GetCarBySlug(ctx, slugID, true)
	if err != nil {
		return nil, err
	}

	SortForDisplay(car.Photos)

	similar, err := uc.cars.ListSimilarCars(ctx, car.Region, car.ID, 8)
	if err != nil {
		uc.logger.Warn("failed to load similar listings", "car_id", car.ID, "error", err)
		similar = nil
	}

	return &CarDetail{Car: car, ColorHex: car.ColorHex(), Similar: similar}, nil
}

func (uc *carInteractor) ListCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error) {
	// Page size is fixed; callers cannot widen it.
	filter.PerPage = catalogPageSize
	if filter.Page <= 0 {
		filter.Page = 1
	}
	return uc.cars.ListCars(ctx, filter)
}

// resolveModel loads the model for the cross-field check; an unknown id maps
// to nil so the validator can attribute the error to the model field.
func (uc *carInteractor) resolveModel(ctx context.Context, modelID int64) (*domain.CarModel, error) {
	if modelID == 0 {
		return nil, nil
	}
	model, err := uc.catalog.GetModel(ctx, modelID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("resolving model %d: %w", modelID, err)
	}
	return model, nil
}

// checkPlace verifies the referenced place exists. Zero is left to the
// required rule of the validator.
func (uc *carInteractor) checkPlace(ctx context.Context, placeID int64) error {
	if placeID == 0 {
		return nil
	}
	if _, err := uc.catalog.GetPlace(ctx, placeID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return validation.Errors{"place_id": errors.New("unknown place")}
		}
		return fmt.Errorf("resolving place %d: %w", placeID, err)
	}
	return nil
}

// uploadNewPhotos streams each new image to the blob store and records the
// resulting key and public URL on the input row.
func (uc *carInteractor) uploadNewPhotos(ctx context.Context, carID uuid.UUID, photos []domain.PhotoInput) error {
	for i := range photos {
		in := &photos[i]
		if in.ID != uuid.Nil || in.Delete || in.File == nil {
			continue
		}

		key := photoObjectKey(carID, in.File.Filename)
		url, err := uc.fileStorage.UploadFile(ctx, key, in.File.Reader, in.File.ContentType)
		if err != nil {
			return fmt.Errorf("uploading photo %q: %w", in.File.Filename, err)
		}
		in.ImageKey = key
		in.ImageURL = url
	}
	return nil
}

func (uc *carInteractor) removeBlobs(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := uc.fileStorage.DeleteFile(ctx, key); err != nil {
			uc.logger.Warn("failed to delete stored image", "key", key, "error", err)
		}
	}
}

func (uc *carInteractor) publish(ctx context.Context, action string, car *domain.Car) {
	if uc.publisher == nil {
		return
	}
	payload := payloads.ListingEventPayload{
		Action:     action,
		CarID:      car.ID,
		Slug:       car.Slug,
		OccurredAt: time.Now(),
	}
	if err := uc.publisher.PublishListingEvent(ctx, payload); err != nil {
		uc.logger.Warn("failed to publish listing event", "action", action, "car_id", car.ID, "error", err)
	}
}

func applyCarInput(car *domain.Car, input CarInput) {
	car.Title = input.Title
	car.BrandID = input.BrandID
	car.ModelID = input.ModelID
	car.Year = input.Year
	car.BodyType = input.BodyType
	car.Transmission = input.Transmission
	car.FuelType = input.FuelType
	car.Seats = input.Seats
	car.Doors = input.Doors
	car.MileageKM = input.MileageKM
	car.Color = input.Color
	car.Description = input.Description
	car.PlaceID = input.PlaceID
	car.DailyPrice = input.DailyPrice
	if input.IsActive != nil {
		car.IsActive = *input.IsActive
	}
}

// slugBase embeds title, brand, model and year, matching the permalink shape
// of listings.
func slugBase(car *domain.Car, model *domain.CarModel) string {
	parts := []string{car.Title}
	if model != nil {
		if model.Brand != nil {
			parts = append(parts, model.Brand.Name)
		}
		parts = append(parts, model.Name)
	}
	parts = append(parts, fmt.Sprintf("%d", car.Year))
	return strings.Join(parts, " ")
}

// photoObjectKey builds the blob key: cars/{car-id}/photos/{YYYY}/{MM}/{hex}{ext}.
func photoObjectKey(carID uuid.UUID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	u := uuid.New()
	return fmt.Sprintf("cars/%s/photos/%s/%s%s", carID, time.Now().Format("2006/01"), hex.EncodeToString(u[:]), ext)
}

// mergeFieldErrors folds several validation results into one field-error map.
func mergeFieldErrors(results ...error) error {
	merged := validation.Errors{}
	for _, err := range results {
		if err == nil {
			continue
		}
		ve, ok := err.(validation.Errors)
		if !ok {
			return err
		}
		for k, v := range ve {
			merged[k] = v
		}
	}
	if len(merged) > 0 {
		return merged
	}
	return nil
}
