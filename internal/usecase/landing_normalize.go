package usecase

import (
	"errors"

	"github.com/GoDakar/CarRentApp/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// NormalizeLandingPage validates and repairs a landing page against its kind
// discriminator. The required target is checked first; the targets not owned
// by the kind are then forcibly cleared, and a blank meta title defaults to
// the title. Idempotent: normalizing an already-normalized page is a no-op.
func NormalizeLandingPage(page *domain.LandingPage) error {
	errs := validation.Errors{}

	if err := validation.Validate(page.Kind,
		validation.Required, validation.In(enumValues(domain.LandingKinds)...)); err != nil {
		errs["kind"] = err
	}
	if err := validation.Validate(page.Title, validation.Required, validation.Length(1, 170)); err != nil {
		errs["title"] = err
	}

	switch page.Kind {
	case domain.LandingDestination:
		if page.CityID == nil {
			errs["city_id"] = errors.New("a city is required for a destination page")
		}
	case domain.LandingRegion:
		if page.Region == nil {
			errs["region"] = errors.New("a region is required for a region page")
		} else if err := validation.Validate(*page.Region, validation.In(enumValues(domain.Regions)...)); err != nil {
			errs["region"] = err
		}
	case domain.LandingCategory:
		if page.BodyType == nil {
			errs["body_type"] = errors.New("a body type is required for a category page")
		} else if err := validation.Validate(*page.BodyType, validation.In(enumValues(domain.BodyTypes)...)); err != nil {
			errs["body_type"] = err
		}
	}

	if len(errs) > 0 {
		return errs
	}

	// Clear the targets the kind does not own. Silently: a stray value on a
	// non-owned field is repaired, not reported.
	switch page.Kind {
	case domain.LandingStatic:
		page.CityID, page.Region, page.BodyType = nil, nil, nil
	case domain.LandingDestination:
		page.Region, page.BodyType = nil, nil
	case domain.LandingRegion:
		page.CityID, page.BodyType = nil, nil
	case domain.LandingCategory:
		page.CityID, page.Region = nil, nil
	}

	if page.MetaTitle == "" {
		page.MetaTitle = page.Title
	}

	return nil
}
