package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/GoDakar/CarRentApp/internal/config"
	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/GoDakar/CarRentApp/internal/slug"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NewGormDB opens the GORM connection used by the reference-catalog storage.
// It shares the database with the sqlx client; the schema is owned by the
// migrations, so auto-migration stays off.
func NewGormDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		logger.Error("failed to open GORM connection", "error", err)
		return nil, fmt.Errorf("opening GORM connection: %w", err)
	}
	return db, nil
}

// Storage manages the reference catalogs (brands, models, cities, places,
// features) and the denormalized search feed.
type Storage struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewStorage(db *gorm.DB, logger *slog.Logger) *Storage {
	return &Storage{db: db, logger: logger}
}

func (s *Storage) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	var brands []domain.Brand
	if err := s.db.WithContext(ctx).Order("name").Find(&brands).Error; err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	return brands, nil
}

func (s *Storage) ListModelsByBrand(ctx context.Context, brandID int64) ([]domain.CarModel, error) {
	var models []domain.CarModel
	if err := s.db.WithContext(ctx).
		Where("brand_id = ?", brandID).
		Order("name").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("listing models for brand %d: %w", brandID, err)
	}
	return models, nil
}

func (s *Storage) GetModel(ctx context.Context, id int64) (*domain.CarModel, error) {
	var model domain.CarModel
	err := s.db.WithContext(ctx).Preload("Brand").First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading model %d: %w", id, err)
	}
	return &model, nil
}

func (s *Storage) ListCities(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	if err := s.db.WithContext(ctx).Order("name").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("listing cities: %w", err)
	}
	return cities, nil
}

func (s *Storage) ListPlaces(ctx context.Context) ([]domain.Place, error) {
	var places []domain.Place
	if err := s.db.WithContext(ctx).
		Preload("City").
		Joins("JOIN cities ON cities.id = places.city_id").
		Order("cities.name").
		Find(&places).Error; err != nil {
		return nil, fmt.Errorf("listing places: %w", err)
	}
	return places, nil
}

func (s *Storage) GetPlace(ctx context.Context, id int64) (*domain.Place, error) {
	var place domain.Place
	err := s.db.WithContext(ctx).Preload("City").First(&place, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading place %d: %w", id, err)
	}
	return &place, nil
}

// SavePlace upserts a place. Country is forced to "SN" whatever the input:
// single-country deployment.
func (s *Storage) SavePlace(ctx context.Context, place *domain.Place) error {
	place.Country = "SN"
	if err := s.db.WithContext(ctx).Save(place).Error; err != nil {
		return fmt.Errorf("saving place: %w", err)
	}
	return nil
}

// SaveCity upserts a city, deriving the slug from the name.
func (s *Storage) SaveCity(ctx context.Context, city *domain.City) error {
	city.Slug = slug.Normalize(city.Name, 80)
	if err := s.db.WithContext(ctx).Save(city).Error; err != nil {
		return fmt.Errorf("saving city: %w", err)
	}
	return nil
}

// SaveFeature upserts a feature tag, deriving the slug from the name.
func (s *Storage) SaveFeature(ctx context.Context, feature *domain.CarFeature) error {
	feature.Slug = slug.Normalize(feature.Name, 180)
	if err := s.db.WithContext(ctx).Save(feature).Error; err != nil {
		return fmt.Errorf("saving feature: %w", err)
	}
	return nil
}

func (s *Storage) ListFeatures(ctx context.Context) ([]domain.CarFeature, error) {
	var features []domain.CarFeature
	if err := s.db.WithContext(ctx).Order("name").Find(&features).Error; err != nil {
		return nil, fmt.Errorf("listing features: %w", err)
	}
	return features, nil
}

// UpsertSearchEntry refreshes one row of the denormalized search feed.
func (s *Storage) UpsertSearchEntry(ctx context.Context, entry *domain.CarSearchEntry) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "car_id"}},
			UpdateAll: true,
		}).
		Create(entry).Error
	if err != nil {
		return fmt.Errorf("upserting search entry: %w", err)
	}
	return nil
}

func (s *Storage) DeleteSearchEntry(ctx context.Context, carID uuid.UUID) error {
	if err := s.db.WithContext(ctx).
		Delete(&domain.CarSearchEntry{}, "car_id = ?", carID).Error; err != nil {
		return fmt.Errorf("deleting search entry: %w", err)
	}
	return nil
}
