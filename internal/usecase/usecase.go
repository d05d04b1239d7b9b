package usecase

import (
	"context"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/GoDakar/CarRentApp/internal/messaging/payloads"
	"github.com/google/uuid"
)

// CarInput carries the mutable listing fields of a create/update submission.
type CarInput struct {
	Title        string              `json:"title"`
	BrandID      int64               `json:"brand_id"`
	ModelID      int64               `json:"model_id"`
	Year         int                 `json:"year"`
	BodyType     domain.BodyType     `json:"body_type"`
	Transmission domain.Transmission `json:"transmission"`
	FuelType     domain.FuelType     `json:"fuel_type"`
	Seats        int                 `json:"seats"`
	Doors        int                 `json:"doors"`
	MileageKM    int                 `json:"mileage_km"`
	Color        domain.CarColor     `json:"color"`
	Description  string              `json:"description"`
	PlaceID      int64               `json:"place_id"`
	DailyPrice   int                 `json:"daily_price"`
	IsActive     *bool               `json:"is_active"`
	FeatureIDs   []int64             `json:"feature_ids"`
}

// CarDetail is the read-side projection of a single listing page.
type CarDetail struct {
	Car      *domain.Car  `json:"car"`
	ColorHex string       `json:"color_hex"`
	Similar  []domain.Car `json:"similar_cars"`
}

// CarUseCase is the listing write and detail surface.
type CarUseCase interface {
	// CreateCar validates the record, assigns the slug, reconciles the
	// photo batch and persists everything in one transaction.
	CreateCar(ctx context.Context, principal domain.Principal, input CarInput, photos []domain.PhotoInput) (*domain.Car, error)

	// UpdateCar does the same for an existing listing; the slug is never
	// regenerated. Mutation requires owner or staff.
	UpdateCar(ctx context.Context, principal domain.Principal, slugID string, input CarInput, photos []domain.PhotoInput) (*domain.Car, error)

	// DeleteCar permanently removes the listing, its photo rows and their
	// stored objects. Owner only.
	DeleteCar(ctx context.Context, principal domain.Principal, slugID string) error

	GetCarDetail(ctx context.Context, slugID string) (*CarDetail, error)
	ListCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error)
}

// LandingInput carries the mutable landing-page fields.
type LandingInput struct {
	Kind            domain.LandingKind `json:"kind"`
	Title           string             `json:"title"`
	Keyword         string             `json:"keyword"`
	Position        *int               `json:"position"`
	CityID          *int64             `json:"city_id"`
	Region          *domain.Region     `json:"region"`
	BodyType        *domain.BodyType   `json:"body_type"`
	Content         string             `json:"content"`
	MetaTitle       string             `json:"meta_title"`
	MetaDescription string             `json:"meta_description"`
	IsActive        *bool              `json:"is_active"`
}

// LandingUseCase manages SEO landing pages. Mutations are staff only.
type LandingUseCase interface {
	CreateLandingPage(ctx context.Context, principal domain.Principal, input LandingInput) (*domain.LandingPage, error)
	UpdateLandingPage(ctx context.Context, principal domain.Principal, id uuid.UUID, input LandingInput) (*domain.LandingPage, error)
	DeleteLandingPage(ctx context.Context, principal domain.Principal, id uuid.UUID) error
	GetLandingPage(ctx context.Context, slug string) (*domain.LandingPage, error)
	ListLandingPages(ctx context.Context, activeOnly bool) ([]domain.LandingPage, error)
}

// FavoriteUseCase toggles and lists per-user favorites.
type FavoriteUseCase interface {
	// ToggleFavorite returns "added" or "removed" plus the car's favorite
	// count after the toggle.
	ToggleFavorite(ctx context.Context, principal domain.Principal, slugID string) (status string, count int, err error)
	ListFavoriteCars(ctx context.Context, principal domain.Principal) ([]domain.Car, error)
}

// HomeFeed is the landing view of the marketplace.
type HomeFeed struct {
	LatestCars []domain.Car `json:"latest_cars"`
	TopCars    []domain.Car `json:"top_cars"`
}

// FormOptions backs the listing form selects.
type FormOptions struct {
	Brands        []domain.Brand               `json:"brands"`
	Cities        []domain.City                `json:"cities"`
	Places        []domain.Place               `json:"places"`
	Features      []domain.CarFeature          `json:"features"`
	BodyTypes     []domain.BodyType            `json:"body_types"`
	FuelTypes     []domain.FuelType            `json:"fuel_types"`
	Transmissions []domain.Transmission        `json:"transmissions"`
	Colors        []domain.CarColor            `json:"colors"`
	ColorHex      map[domain.CarColor]string   `json:"color_hex"`
	Regions       []domain.Region              `json:"regions"`
	PriceLadder   []int                        `json:"price_ladder"`
	MileageLadder []int                        `json:"mileage_ladder"`
}

// CatalogUseCase is the browse/search surface plus the reference catalogs.
// Catalog mutations are staff only.
type CatalogUseCase interface {
	Home(ctx context.Context) (*HomeFeed, error)
	FormOptions(ctx context.Context) (*FormOptions, error)
	ListModelsByBrand(ctx context.Context, brandID int64) ([]domain.CarModel, error)

	SaveCity(ctx context.Context, principal domain.Principal, city *domain.City) error
	SavePlace(ctx context.Context, principal domain.Principal, place *domain.Place) error
	SaveFeature(ctx context.Context, principal domain.Principal, feature *domain.CarFeature) error

	// HandleListingEvent keeps the denormalized search feed in sync; it is
	// the worker's message handler.
	HandleListingEvent(ctx context.Context, payload payloads.ListingEventPayload) error
}
