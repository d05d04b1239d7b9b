package domain

import (
	"time"

	"github.com/google/uuid"
)

// LandingKind discriminates which target field of a landing page is active.
type LandingKind string

const (
	LandingStatic      LandingKind = "STATIC"
	LandingDestination LandingKind = "DESTINATION"
	LandingRegion      LandingKind = "REGION"
	LandingCategory    LandingKind = "CATEGORY"
)

var LandingKinds = []LandingKind{
	LandingStatic, LandingDestination, LandingRegion, LandingCategory,
}

// LandingPage is an SEO page targeting a city, a region, a body-type category,
// or nothing (static). Exactly one target field matching Kind is non-null
// after a save; the normalizer clears the others.
type LandingPage struct {
	ID       uuid.UUID   `json:"id" db:"id"`
	Kind     LandingKind `json:"kind" db:"kind"`
	Title    string      `json:"title" db:"title"`
	Slug     string      `json:"slug" db:"slug"`
	Keyword  string      `json:"keyword,omitempty" db:"keyword"`
	Position *int        `json:"position,omitempty" db:"position"`

	CityID   *int64    `json:"city_id,omitempty" db:"city_id"`
	Region   *Region   `json:"region,omitempty" db:"region"`
	BodyType *BodyType `json:"body_type,omitempty" db:"body_type"`

	Content         string `json:"content,omitempty" db:"content"`
	MetaTitle       string `json:"meta_title,omitempty" db:"meta_title"`
	MetaDescription string `json:"meta_description,omitempty" db:"meta_description"`

	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func (LandingPage) TableName() string {
	return "landing_pages"
}
