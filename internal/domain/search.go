package domain

import (
	"time"

	"github.com/google/uuid"
)

// CarSearchEntry is the denormalized search-feed row kept in sync by the
// worker from listing events. One row per active car.
type CarSearchEntry struct {
	CarID      uuid.UUID `json:"car_id" gorm:"primaryKey;type:uuid"`
	Slug       string    `json:"slug" gorm:"size:160;uniqueIndex;not null"`
	Title      string    `json:"title" gorm:"size:140;not null"`
	BrandName  string    `json:"brand_name" gorm:"size:60"`
	ModelName  string    `json:"model_name" gorm:"size:200"`
	BodyType   BodyType  `json:"body_type" gorm:"size:12"`
	Region     Region    `json:"region" gorm:"size:20;index"`
	CityName   string    `json:"city_name" gorm:"size:80"`
	DailyPrice int       `json:"daily_price" gorm:"index"`
	IsFeatured bool      `json:"is_featured"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (CarSearchEntry) TableName() string {
	return "car_search_feed"
}
