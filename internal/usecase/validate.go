package usecase

import (
	"errors"
	"time"

	"github.com/GoDakar/CarRentApp/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateCar runs the declarative field rules plus the brand/model
// cross-check. model is the resolved record for car.ModelID, nil when the
// lookup found nothing. Returns validation.Errors keyed by field name, or nil.
//
// This runs before slug assignment and before photo reconciliation; when it
// fails nothing is written.
func ValidateCar(car *domain.Car, model *domain.CarModel) error {
	maxYear := time.Now().Year() + 1

	err := validation.ValidateStruct(car,
		validation.Field(&car.Title, validation.Required, validation.Length(1, 140)),
		validation.Field(&car.BrandID, validation.Required),
		validation.Field(&car.ModelID, validation.Required),
		validation.Field(&car.PlaceID, validation.Required),
		validation.Field(&car.Year,
			validation.Min(2010).Error("year must be 2010 or later"),
			validation.Max(maxYear).Error("year cannot be in the far future"),
		),
		validation.Field(&car.BodyType, validation.Required, validation.In(enumValues(domain.BodyTypes)...)),
		validation.Field(&car.Transmission, validation.Required, validation.In(enumValues(domain.Transmissions)...)),
		validation.Field(&car.FuelType, validation.Required, validation.In(enumValues(domain.FuelTypes)...)),
		validation.Field(&car.Color, validation.Required, validation.In(enumValues(domain.CarColors)...)),
		validation.Field(&car.Seats, validation.Min(1), validation.Max(20)),
		validation.Field(&car.Doors, validation.Min(2), validation.Max(4)),
		validation.Field(&car.MileageKM, validation.By(ladderRule(domain.MileageLadder))),
		validation.Field(&car.DailyPrice, validation.By(ladderRule(domain.PriceLadder))),
	)

	errs := validation.Errors{}
	if err != nil {
		var ve validation.Errors
		if !errors.As(err, &ve) {
			return err
		}
		errs = ve
	}

	if _, dup := errs["model_id"]; !dup {
		switch {
		case car.ModelID != 0 && model == nil:
			errs["model_id"] = errors.New("unknown model")
		case model != nil && car.BrandID != 0 && model.BrandID != car.BrandID:
			errs["model_id"] = errors.New("this model does not belong to the selected brand")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ladderRule rejects any value outside the fixed discrete ladder; these are
// selections, not free-form numbers.
func ladderRule(ladder []int) validation.RuleFunc {
	return func(value interface{}) error {
		v, ok := value.(int)
		if !ok || !domain.InLadder(ladder, v) {
			return errors.New("must be one of the permitted values")
		}
		return nil
	}
}

func enumValues[T ~string](vals []T) []interface{} {
	out := make([]interface{}, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
