package domain

// Reference catalogs backing the listing form selects. These rows are managed
// through the gorm storage; they have uniqueness constraints but no lifecycle
// logic of their own.

// City maps to the cities table. Slug is derived from the name on save.
type City struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:80;uniqueIndex;not null"`
	Slug string `json:"slug" gorm:"size:80;uniqueIndex;not null"`
}

func (City) TableName() string {
	return "cities"
}

// Place maps to the places table. Country is forced to "SN" on every write:
// single-country deployment.
type Place struct {
	ID        int64    `json:"id" gorm:"primaryKey"`
	CityID    int64    `json:"city_id" gorm:"index;not null"`
	City      *City    `json:"city,omitempty" gorm:"foreignKey:CityID"`
	Region    Region   `json:"region" gorm:"size:20;not null"`
	Country   string   `json:"country" gorm:"size:2;not null;default:SN;index"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func (Place) TableName() string {
	return "places"
}

// CountryName is fixed for the deployment.
func (Place) CountryName() string {
	return "Sénégal"
}

// Brand maps to the brands table.
type Brand struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:60;uniqueIndex;not null"`
}

func (Brand) TableName() string {
	return "brands"
}

// CarModel maps to the car_models table; name is unique within a brand.
type CarModel struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	BrandID int64  `json:"brand_id" gorm:"uniqueIndex:uniq_brand_model;not null"`
	Brand   *Brand `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Name    string `json:"name" gorm:"size:200;uniqueIndex:uniq_brand_model;not null"`
}

func (CarModel) TableName() string {
	return "car_models"
}

// CarFeature maps to the car_features table (tags, m2m with cars).
type CarFeature struct {
	ID   int64  `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:180;uniqueIndex;not null"`
	Icon string `json:"icon,omitempty" gorm:"size:180"`
	Slug string `json:"slug" gorm:"size:180;uniqueIndex;not null"`
}

func (CarFeature) TableName() string {
	return "car_features"
}
