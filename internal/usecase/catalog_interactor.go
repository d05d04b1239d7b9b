package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoDakar/CarRentApp/internal/core/ports"
	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/GoDakar/CarRentApp/internal/messaging/payloads"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// catalogInteractor implements CatalogUseCase.
type catalogInteractor struct {
	cars    ports.CarStorage
	catalog ports.CatalogStorage
	logger  *slog.Logger
}

// NewCatalogUseCase wires the browse surface, the reference catalogs and the
// search-feed refresh consumed by the worker.
func NewCatalogUseCase(cars ports.CarStorage, catalog ports.CatalogStorage, logger *slog.Logger) CatalogUseCase {
	return &catalogInteractor{cars: cars, catalog: catalog, logger: logger}
}

func (uc *catalogInteractor) Home(ctx context.Context) (*HomeFeed, error) {
	latest, err := uc.cars.ListLatestCars(ctx, 12)
	if err != nil {
		return nil, fmt.Errorf("loading latest listings: %w", err)
	}
	top, err := uc.cars.ListTopCars(ctx, 3)
	if err != nil {
		return nil, fmt.Errorf("loading top listings: %w", err)
	}
	return &HomeFeed{LatestCars: latest, TopCars: top}, nil
}

func (uc *catalogInteractor) FormOptions(ctx context.Context) (*FormOptions, error) {
	brands, err := uc.catalog.ListBrands(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading brands: %w", err)
	}
	cities, err := uc.catalog.ListCities(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading cities: %w", err)
	}
	places, err := uc.catalog.ListPlaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading places: %w", err)
	}
	features, err := uc.catalog.ListFeatures(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading features: %w", err)
	}

	return &FormOptions{
		Brands:        brands,
		Cities:        cities,
		Places:        places,
		Features:      features,
		BodyTypes:     domain.BodyTypes,
		FuelTypes:     domain.FuelTypes,
		Transmissions: domain.Transmissions,
		Colors:        domain.CarColors,
		ColorHex:      domain.ColorHex,
		Regions:       domain.Regions,
		PriceLadder:   domain.PriceLadder,
		MileageLadder: domain.MileageLadder,
	}, nil
}

func (uc *catalogInteractor) ListModelsByBrand(ctx context.Context, brandID int64) ([]domain.CarModel, error) {
	return uc.catalog.ListModelsByBrand(ctx, brandID)
}

func (uc *catalogInteractor) SaveCity(ctx context.Context, principal domain.Principal, city *domain.City) error {
	if !principal.IsStaff {
		return domain.ErrForbidden
	}
	if err := validation.Validate(city.Name, validation.Required, validation.Length(1, 80)); err != nil {
		return validation.Errors{"name": err}
	}
	if err := uc.catalog.SaveCity(ctx, city); err != nil {
		return fmt.Errorf("saving city: %w", err)
	}
	uc.logger.Info("city saved", "city_id", city.ID, "name", city.Name)
	return nil
}

func (uc *catalogInteractor) SavePlace(ctx context.Context, principal domain.Principal, place *domain.Place) error {
	if !principal.IsStaff {
		return domain.ErrForbidden
	}
	if err := validatePlace(place); err != nil {
		return err
	}
	if err := uc.catalog.SavePlace(ctx, place); err != nil {
		return fmt.Errorf("saving place: %w", err)
	}
	uc.logger.Info("place saved", "place_id", place.ID, "region", place.Region)
	return nil
}

func (uc *catalogInteractor) SaveFeature(ctx context.Context, principal domain.Principal, feature *domain.CarFeature) error {
	if !principal.IsStaff {
		return domain.ErrForbidden
	}
	if err := validation.Validate(feature.Name, validation.Required, validation.Length(1, 180)); err != nil {
		return validation.Errors{"name": err}
	}
	if err := uc.catalog.SaveFeature(ctx, feature); err != nil {
		return fmt.Errorf("saving feature: %w", err)
	}
	uc.logger.Info("feature saved", "feature_id", feature.ID, "name", feature.Name)
	return nil
}

func validatePlace(place *domain.Place) error {
	errs := validation.Errors{}
	if place.CityID == 0 {
		errs["city_id"] = errors.New("a city is required")
	}
	if err := validation.Validate(place.Region,
		validation.Required, validation.In(enumValues(domain.Regions)...)); err != nil {
		errs["region"] = err
	}
	if place.Latitude != nil && (*place.Latitude < -90 || *place.Latitude > 90) {
		errs["latitude"] = errors.New("latitude must be between -90 and 90")
	}
	if place.Longitude != nil && (*place.Longitude < -180 || *place.Longitude > 180) {
		errs["longitude"] = errors.New("longitude must be between -180 and 180")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// HandleListingEvent refreshes the denormalized search feed from a listing
// event. Called by the worker for every consumed message.
func (uc *catalogInteractor) HandleListingEvent(ctx context.Context, payload payloads.ListingEventPayload) error {
	if payload.Action == payloads.ListingDeleted {
		if err := uc.catalog.DeleteSearchEntry(ctx, payload.CarID); err != nil {
			return fmt.Errorf("removing search entry for %s: %w", payload.CarID, err)
		}
		uc.logger.Info("search entry removed", "car_id", payload.CarID)
		return nil
	}

	car, err := uc.cars.GetCarByID(ctx, payload.CarID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The listing vanished between publish and consume; drop the
			// stale entry instead of requeueing forever.
			return uc.catalog.DeleteSearchEntry(ctx, payload.CarID)
		}
		return fmt.Errorf("loading listing %s: %w", payload.CarID, err)
	}

	if !car.IsActive {
		return uc.catalog.DeleteSearchEntry(ctx, car.ID)
	}

	entry := &domain.CarSearchEntry{
		CarID:      car.ID,
		Slug:       car.Slug,
		Title:      car.Title,
		BrandName:  car.BrandName,
		ModelName:  car.ModelName,
		BodyType:   car.BodyType,
		Region:     car.Region,
		CityName:   car.CityName,
		DailyPrice: car.DailyPrice,
		IsFeatured: car.IsFeatured,
		UpdatedAt:  time.Now(),
	}
	if err := uc.catalog.UpsertSearchEntry(ctx, entry); err != nil {
		return fmt.Errorf("upserting search entry for %s: %w", car.ID, err)
	}

	uc.logger.Info("search entry refreshed", "car_id", car.ID, "slug", car.Slug)
	return nil
}
