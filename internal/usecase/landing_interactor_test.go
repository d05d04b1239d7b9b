package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLandingStorage is an in-memory ports.LandingStorage.
type fakeLandingStorage struct {
	pages map[uuid.UUID]*domain.LandingPage
}

func newFakeLandingStorage() *fakeLandingStorage {
	return &fakeLandingStorage{pages: make(map[uuid.UUID]*domain.LandingPage)}
}

func (f *fakeLandingStorage) CreateLandingPage(_ context.Context, page *domain.LandingPage) error {
	cp := *page
	f.pages[page.ID] = &cp
	return nil
}

func (f *fakeLandingStorage) UpdateLandingPage(_ context.Context, page *domain.LandingPage) error {
	cp := *page
	f.pages[page.ID] = &cp
	return nil
}

func (f *fakeLandingStorage) DeleteLandingPage(_ context.Context, id uuid.UUID) error {
	if _, ok := f.pages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.pages, id)
	return nil
}

func (f *fakeLandingStorage) GetLandingPageByID(_ context.Context, id uuid.UUID) (*domain.LandingPage, error) {
	page, ok := f.pages[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *page
	return &cp, nil
}

func (f *fakeLandingStorage) GetLandingPageBySlug(_ context.Context, slug string, activeOnly bool) (*domain.LandingPage, error) {
	for _, page := range f.pages {
		if page.Slug == slug && (!activeOnly || page.IsActive) {
			cp := *page
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeLandingStorage) ListLandingPages(_ context.Context, activeOnly bool) ([]domain.LandingPage, error) {
	var out []domain.LandingPage
	for _, page := range f.pages {
		if !activeOnly || page.IsActive {
			out = append(out, *page)
		}
	}
	return out, nil
}

func (f *fakeLandingStorage) SlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	for _, page := range f.pages {
		if page.Slug == slug && page.ID != exclude {
			return true, nil
		}
	}
	return false, nil
}

func testLandingUseCase() (LandingUseCase, *fakeLandingStorage) {
	store := newFakeLandingStorage()
	return NewLandingUseCase(store, slog.New(slog.DiscardHandler)), store
}

var staff = domain.Principal{UserID: uuid.New(), IsStaff: true}
var member = domain.Principal{UserID: uuid.New()}

func TestLandingUseCase_MutationsAreStaffOnly(t *testing.T) {
	uc, _ := testLandingUseCase()
	ctx := context.Background()

	input := LandingInput{Kind: domain.LandingStatic, Title: "About"}

	_, err := uc.CreateLandingPage(ctx, member, input)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.UpdateLandingPage(ctx, member, uuid.New(), input)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	err = uc.DeleteLandingPage(ctx, member, uuid.New())
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLandingUseCase_CreateAssignsSlugFromTitle(t *testing.T) {
	uc, _ := testLandingUseCase()
	ctx := context.Background()

	page, err := uc.CreateLandingPage(ctx, staff, LandingInput{
		Kind:   domain.LandingDestination,
		Title:  "Location de voiture Saly",
		CityID: ptr(int64(4)),
	})
	require.NoError(t, err)
	assert.Equal(t, "location-de-voiture-saly", page.Slug)
}

func TestLandingUseCase_SlugCollisionGetsSuffix(t *testing.T) {
	uc, _ := testLandingUseCase()
	ctx := context.Background()

	input := LandingInput{Kind: domain.LandingStatic, Title: "FAQ"}

	first, err := uc.CreateLandingPage(ctx, staff, input)
	require.NoError(t, err)
	second, err := uc.CreateLandingPage(ctx, staff, input)
	require.NoError(t, err)

	assert.Equal(t, "faq", first.Slug)
	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Regexp(t, `^faq-[0-9a-f]{6}$`, second.Slug)
}

func TestLandingUseCase_SlugStableUnlessTitleChanges(t *testing.T) {
	uc, _ := testLandingUseCase()
	ctx := context.Background()

	page, err := uc.CreateLandingPage(ctx, staff, LandingInput{
		Kind:    domain.LandingStatic,
		Title:   "Conditions de location",
		Content: "v1",
	})
	require.NoError(t, err)
	originalSlug := page.Slug
	assert.Equal(t, "conditions-de-location", originalSlug)

	// Content-only edit keeps the permalink.
	updated, err := uc.UpdateLandingPage(ctx, staff, page.ID, LandingInput{
		Kind:    domain.LandingStatic,
		Title:   "Conditions de location",
		Content: "v2",
	})
	require.NoError(t, err)
	assert.Equal(t, originalSlug, updated.Slug)

	// A title change regenerates it.
	updated, err = uc.UpdateLandingPage(ctx, staff, page.ID, LandingInput{
		Kind:  domain.LandingStatic,
		Title: "Mentions legales",
	})
	require.NoError(t, err)
	assert.NotEqual(t, originalSlug, updated.Slug)
	assert.Equal(t, "mentions-legales", updated.Slug)
}

func TestLandingUseCase_GetBySlugIsActiveOnly(t *testing.T) {
	uc, store := testLandingUseCase()
	ctx := context.Background()

	inactive := false
	page, err := uc.CreateLandingPage(ctx, staff, LandingInput{
		Kind:     domain.LandingStatic,
		Title:    "Hidden draft",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	require.Contains(t, store.pages, page.ID)

	_, err = uc.GetLandingPage(ctx, page.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
