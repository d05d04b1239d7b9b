package ports

import (
	"context"
	"io"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/google/uuid"
)

// CarStorage persists listings and their photo sets. Create/Update/Delete run
// inside a single transaction: record write, feature links and the photo plan
// commit together or not at all.
type CarStorage interface {
	CreateCar(ctx context.Context, car *domain.Car, featureIDs []int64, plan *domain.PhotoPlan) error
	UpdateCar(ctx context.Context, car *domain.Car, featureIDs []int64, plan *domain.PhotoPlan) error

	// DeleteCar removes the car and its photo rows, returning the object
	// keys of the removed images so the caller can clear the blob store.
	DeleteCar(ctx context.Context, id uuid.UUID) ([]string, error)

	GetCarByID(ctx context.Context, id uuid.UUID) (*domain.Car, error)
	GetCarBySlug(ctx context.Context, slug string, activeOnly bool) (*domain.Car, error)

	ListCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error)
	ListLatestCars(ctx context.Context, limit int) ([]domain.Car, error)
	ListTopCars(ctx context.Context, limit int) ([]domain.Car, error)
	ListSimilarCars(ctx context.Context, region domain.Region, exclude uuid.UUID, limit int) ([]domain.Car, error)

	PhotosByCar(ctx context.Context, carID uuid.UUID) ([]domain.CarPhoto, error)
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
}

// LandingStorage persists SEO landing pages.
type LandingStorage interface {
	CreateLandingPage(ctx context.Context, page *domain.LandingPage) error
	UpdateLandingPage(ctx context.Context, page *domain.LandingPage) error
	DeleteLandingPage(ctx context.Context, id uuid.UUID) error

	GetLandingPageByID(ctx context.Context, id uuid.UUID) (*domain.LandingPage, error)
	GetLandingPageBySlug(ctx context.Context, slug string, activeOnly bool) (*domain.LandingPage, error)
	ListLandingPages(ctx context.Context, activeOnly bool) ([]domain.LandingPage, error)

	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
}

// FavoriteStorage persists user favorites; (user, car) pairs are unique.
type FavoriteStorage interface {
	// ToggleFavorite inserts the pair if absent or removes it if present,
	// and returns whether it was added plus the resulting count for the car.
	ToggleFavorite(ctx context.Context, userID, carID uuid.UUID) (added bool, count int, err error)
	ListFavoriteCars(ctx context.Context, userID uuid.UUID) ([]domain.Car, error)
}

// UserStorage resolves principals to marketplace users.
type UserStorage interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// CatalogStorage manages the reference catalogs backing the listing form and
// the denormalized search feed.
type CatalogStorage interface {
	ListBrands(ctx context.Context) ([]domain.Brand, error)
	ListModelsByBrand(ctx context.Context, brandID int64) ([]domain.CarModel, error)
	GetModel(ctx context.Context, id int64) (*domain.CarModel, error)
	ListCities(ctx context.Context) ([]domain.City, error)
	ListPlaces(ctx context.Context) ([]domain.Place, error)
	GetPlace(ctx context.Context, id int64) (*domain.Place, error)
	SavePlace(ctx context.Context, place *domain.Place) error
	SaveCity(ctx context.Context, city *domain.City) error
	SaveFeature(ctx context.Context, feature *domain.CarFeature) error
	ListFeatures(ctx context.Context) ([]domain.CarFeature, error)

	UpsertSearchEntry(ctx context.Context, entry *domain.CarSearchEntry) error
	DeleteSearchEntry(ctx context.Context, carID uuid.UUID) error
}

// FileStorage is the binary object store (S3 / MinIO). UploadFile returns the
// publicly resolvable URL; the database only ever stores that reference.
type FileStorage interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, contentType string) (string, error)
	DeleteFile(ctx context.Context, key string) error
}
