package domain

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// Photo set bounds for a complete listing. A car can transiently exist with
// zero photos mid-edit, but a submission that would leave the set outside
// these bounds is rejected as a whole.
const (
	MinPhotos = 1
	MaxPhotos = 6
)

// Car represents a rental listing, maps to the cars table.
type Car struct {
	ID           uuid.UUID    `json:"id" db:"id"`
	OwnerID      uuid.UUID    `json:"owner_id" db:"owner_id"`
	Title        string       `json:"title" db:"title"`
	Slug         string       `json:"slug" db:"slug"`
	BrandID      int64        `json:"brand_id" db:"brand_id"`
	ModelID      int64        `json:"model_id" db:"model_id"`
	Year         int          `json:"year" db:"year"`
	BodyType     BodyType     `json:"body_type" db:"body_type"`
	Transmission Transmission `json:"transmission" db:"transmission"`
	FuelType     FuelType     `json:"fuel_type" db:"fuel_type"`
	Seats        int          `json:"seats" db:"seats"`
	Doors        int          `json:"doors" db:"doors"`
	MileageKM    int          `json:"mileage_km" db:"mileage_km"`
	Color        CarColor     `json:"color" db:"color"`
	Description  string       `json:"description" db:"description"`
	PlaceID      int64        `json:"place_id" db:"place_id"`
	DailyPrice   int          `json:"daily_price" db:"daily_price"`
	IsActive     bool         `json:"is_active" db:"is_active"`
	IsFeatured   bool         `json:"is_featured" db:"is_featured"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`

	Features []CarFeature `json:"features,omitempty" db:"-"`
	Photos   []CarPhoto   `json:"photos,omitempty" db:"-"`

	// Join-filled read fields, not columns of the cars table.
	BrandName     string `json:"brand_name,omitempty" db:"brand_name"`
	ModelName     string `json:"model_name,omitempty" db:"model_name"`
	CityName      string `json:"city_name,omitempty" db:"city_name"`
	Region        Region `json:"region,omitempty" db:"region"`
	FavoriteCount int    `json:"favorite_count" db:"favorite_count"`
}

func (Car) TableName() string {
	return "cars"
}

// ColorHex returns the display hex of the car's color.
func (c *Car) ColorHex() string {
	return HexFor(c.Color)
}

// CoverPhoto returns the cover photo, or nil when the set has none yet.
func (c *Car) CoverPhoto() *CarPhoto {
	for i := range c.Photos {
		if c.Photos[i].IsCover {
			return &c.Photos[i]
		}
	}
	return nil
}

// CarPhoto maps to the car_photos table. At most one row per car may have
// is_cover = true, enforced by a partial unique index.
type CarPhoto struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CarID      uuid.UUID `json:"car_id" db:"car_id"`
	ImageKey   string    `json:"-" db:"image_key"`
	ImageURL   string    `json:"image_url" db:"image_url"`
	Caption    string    `json:"caption" db:"caption"`
	IsCover    bool      `json:"is_cover" db:"is_cover"`
	Order      int       `json:"order" db:"display_order"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

func (CarPhoto) TableName() string {
	return "car_photos"
}

// PhotoFile is an uploaded image stream, handed to the blob store untouched.
type PhotoFile struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// PhotoInput is one row of a submitted photo batch. ID is zero for inserts;
// File is required for inserts and ignored on metadata updates. ImageKey and
// ImageURL are filled by the upload step after validation, before the write
// plan is built.
type PhotoInput struct {
	ID      uuid.UUID
	File    *PhotoFile
	Caption string
	IsCover bool
	Order   int
	Delete  bool

	ImageKey string
	ImageURL string
}

// PhotoPlan is the reconciled outcome of a photo batch: the exact writes the
// storage layer applies inside one transaction. CoverID names the single row
// that ends up with is_cover = true; every other row of the car is demoted in
// the same transaction.
type PhotoPlan struct {
	Deletes     []uuid.UUID
	Upserts     []CarPhoto
	CoverID     uuid.UUID
	RemovedKeys []string
}

// Favorite maps to the favorites table; (user_id, car_id) is unique.
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	CarID     uuid.UUID `json:"car_id" db:"car_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// CarFilter narrows catalog queries. Zero values mean "no constraint".
type CarFilter struct {
	BodyType BodyType
	Region   Region
	OwnerID  uuid.UUID
	Page     int
	PerPage  int
}

// NewCar returns a car pre-filled with the same defaults the listing form
// starts from.
func NewCar() *Car {
	return &Car{
		ID:           uuid.New(),
		Year:         2010,
		BodyType:     BodyCityCar,
		Transmission: TransmissionManual,
		FuelType:     FuelGasoline,
		Seats:        5,
		Doors:        4,
		MileageKM:    10000,
		Color:        ColorWhite,
		DailyPrice:   15000,
		IsActive:     true,
	}
}
