package usecase

import (
	"testing"
	"time"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/stretchr/testify/assert"
)

func validCar() *domain.Car {
	car := domain.NewCar()
	car.Title = "Toyota Corolla à louer à Dakar"
	car.BrandID = 1
	car.ModelID = 10
	car.PlaceID = 3
	car.Year = 2019
	return car
}

func corollaModel() *domain.CarModel {
	return &domain.CarModel{ID: 10, BrandID: 1, Name: "Corolla"}
}

func TestValidateCar_ValidRecordPasses(t *testing.T) {
	assert.NoError(t, ValidateCar(validCar(), corollaModel()))
}

func TestValidateCar_RequiredFields(t *testing.T) {
	car := validCar()
	car.Title = ""
	car.PlaceID = 0

	errs := fieldErrors(t, ValidateCar(car, corollaModel()))
	assert.Contains(t, errs, "title")
	assert.Contains(t, errs, "place_id")
}

func TestValidateCar_YearBounds(t *testing.T) {
	car := validCar()
	car.Year = 2009
	errs := fieldErrors(t, ValidateCar(car, corollaModel()))
	assert.Contains(t, errs, "year")

	car.Year = time.Now().Year() + 1
	assert.NoError(t, ValidateCar(car, corollaModel()))

	car.Year = time.Now().Year() + 2
	errs = fieldErrors(t, ValidateCar(car, corollaModel()))
	assert.Contains(t, errs, "year")
}

func TestValidateCar_EnumMembership(t *testing.T) {
	car := validCar()
	car.BodyType = "spaceship"
	car.FuelType = "plutonium"
	car.Color = "chartreuse"

	errs := fieldErrors(t, ValidateCar(car, corollaModel()))
	assert.Contains(t, errs, "body_type")
	assert.Contains(t, errs, "fuel_type")
	assert.Contains(t, errs, "color")
}

func TestValidateCar_SeatsAndDoors(t *testing.T) {
	car := validCar()
	car.Seats = 21
	car.Doors = 5

	errs := fieldErrors(t, ValidateCar(car, corollaModel()))
	assert.Contains(t, errs, "seats")
	assert.Contains(t, errs, "doors")
}

func TestValidateCar_LadderValues(t *testing.T) {
	car := validCar()

	// On-ladder values pass.
	car.DailyPrice = 45000
	car.MileageKM = 120000
	assert.NoError(t, ValidateCar(car, corollaModel()))

	// Off-ladder values are selections gone wrong, rejected per field.
	car.DailyPrice = 45001
	car.MileageKM = 120001
	errs := fieldErrors(t, ValidateCar(car, corollaModel()))
	assert.Contains(t, errs, "daily_price")
	assert.Contains(t, errs, "mileage_km")
}

func TestValidateCar_UnknownModel(t *testing.T) {
	car := validCar()
	errs := fieldErrors(t, ValidateCar(car, nil))
	assert.Contains(t, errs, "model_id")
	assert.EqualError(t, errs["model_id"], "unknown model")
}

func TestValidateCar_ModelBrandMismatchAttributedToModel(t *testing.T) {
	car := validCar()
	car.BrandID = 2 // model 10 belongs to brand 1

	errs := fieldErrors(t, ValidateCar(car, corollaModel()))
	assert.Contains(t, errs, "model_id")
	assert.NotContains(t, errs, "brand_id")
	assert.EqualError(t, errs["model_id"], "this model does not belong to the selected brand")
}
