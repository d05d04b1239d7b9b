package usecase

import (
	"testing"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestNormalizeLandingPage_StaticClearsAllTargets(t *testing.T) {
	page := &domain.LandingPage{
		Kind:     domain.LandingStatic,
		Title:    "About us",
		CityID:   ptr(int64(4)),
		Region:   ptr(domain.RegionDakar),
		BodyType: ptr(domain.BodySUV),
	}

	require.NoError(t, NormalizeLandingPage(page))
	assert.Nil(t, page.CityID)
	assert.Nil(t, page.Region)
	assert.Nil(t, page.BodyType)
}

func TestNormalizeLandingPage_DestinationRequiresCity(t *testing.T) {
	page := &domain.LandingPage{
		Kind:  domain.LandingDestination,
		Title: "Location de voiture à Saly",
	}

	errs := fieldErrors(t, NormalizeLandingPage(page))
	assert.Contains(t, errs, "city_id")
}

func TestNormalizeLandingPage_DestinationClearsOtherTargets(t *testing.T) {
	page := &domain.LandingPage{
		Kind:   domain.LandingDestination,
		Title:  "Location de voiture à Saly",
		CityID: ptr(int64(4)),
		// Stray region from a kind switch in the admin form.
		Region: ptr(domain.RegionThies),
	}

	require.NoError(t, NormalizeLandingPage(page))
	require.NotNil(t, page.CityID)
	assert.Equal(t, int64(4), *page.CityID)
	assert.Nil(t, page.Region)
	assert.Nil(t, page.BodyType)
}

func TestNormalizeLandingPage_RegionRequiresValidRegion(t *testing.T) {
	page := &domain.LandingPage{
		Kind:  domain.LandingRegion,
		Title: "Voitures en Casamance",
	}
	errs := fieldErrors(t, NormalizeLandingPage(page))
	assert.Contains(t, errs, "region")

	page.Region = ptr(domain.Region("Atlantis"))
	errs = fieldErrors(t, NormalizeLandingPage(page))
	assert.Contains(t, errs, "region")

	page.Region = ptr(domain.RegionZiguinchor)
	require.NoError(t, NormalizeLandingPage(page))
	assert.Nil(t, page.CityID)
	assert.Nil(t, page.BodyType)
}

func TestNormalizeLandingPage_CategoryRequiresBodyType(t *testing.T) {
	page := &domain.LandingPage{
		Kind:  domain.LandingCategory,
		Title: "Louer un 4x4",
	}
	errs := fieldErrors(t, NormalizeLandingPage(page))
	assert.Contains(t, errs, "body_type")

	page.BodyType = ptr(domain.BodyFourByFour)
	require.NoError(t, NormalizeLandingPage(page))
}

func TestNormalizeLandingPage_UnknownKindRejected(t *testing.T) {
	page := &domain.LandingPage{Kind: "BLOG", Title: "x"}
	errs := fieldErrors(t, NormalizeLandingPage(page))
	assert.Contains(t, errs, "kind")
}

func TestNormalizeLandingPage_MetaTitleDefaultsToTitle(t *testing.T) {
	page := &domain.LandingPage{Kind: domain.LandingStatic, Title: "Conditions générales"}
	require.NoError(t, NormalizeLandingPage(page))
	assert.Equal(t, "Conditions générales", page.MetaTitle)

	// An explicit meta title is kept.
	page = &domain.LandingPage{Kind: domain.LandingStatic, Title: "CGU", MetaTitle: "CGU | CarRent"}
	require.NoError(t, NormalizeLandingPage(page))
	assert.Equal(t, "CGU | CarRent", page.MetaTitle)
}

func TestNormalizeLandingPage_Idempotent(t *testing.T) {
	page := &domain.LandingPage{
		Kind:   domain.LandingRegion,
		Title:  "Voitures à Thiès",
		Region: ptr(domain.RegionThies),
	}

	require.NoError(t, NormalizeLandingPage(page))
	first := *page
	require.NoError(t, NormalizeLandingPage(page))
	assert.Equal(t, first, *page)
}
