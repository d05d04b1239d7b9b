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

// stubCarStorage serves a single active listing by slug and records the last
// list filter it was asked for.
type stubCarStorage struct {
	car        *domain.Car
	lastFilter domain.CarFilter
}

func (s *stubCarStorage) CreateCar(context.Context, *domain.Car, []int64, *domain.PhotoPlan) error {
	return nil
}
func (s *stubCarStorage) UpdateCar(context.Context, *domain.Car, []int64, *domain.PhotoPlan) error {
	return nil
}
func (s *stubCarStorage) DeleteCar(context.Context, uuid.UUID) ([]string, error) { return nil, nil }
func (s *stubCarStorage) GetCarByID(context.Context, uuid.UUID) (*domain.Car, error) {
	return nil, domain.ErrNotFound
}
func (s *stubCarStorage) GetCarBySlug(_ context.Context, slug string, activeOnly bool) (*domain.Car, error) {
	if s.car != nil && s.car.Slug == slug && (!activeOnly || s.car.IsActive) {
		return s.car, nil
	}
	return nil, domain.ErrNotFound
}
func (s *stubCarStorage) ListCars(_ context.Context, filter domain.CarFilter) ([]domain.Car, error) {
	s.lastFilter = filter
	return nil, nil
}
func (s *stubCarStorage) ListLatestCars(context.Context, int) ([]domain.Car, error) { return nil, nil }
func (s *stubCarStorage) ListTopCars(context.Context, int) ([]domain.Car, error)    { return nil, nil }
func (s *stubCarStorage) ListSimilarCars(context.Context, domain.Region, uuid.UUID, int) ([]domain.Car, error) {
	return nil, nil
}
func (s *stubCarStorage) PhotosByCar(context.Context, uuid.UUID) ([]domain.CarPhoto, error) {
	return nil, nil
}
func (s *stubCarStorage) SlugExists(context.Context, string, uuid.UUID) (bool, error) {
	return false, nil
}

// fakeFavoriteStorage keeps (user, car) pairs in memory.
type fakeFavoriteStorage struct {
	pairs map[[2]uuid.UUID]bool
}

func newFakeFavoriteStorage() *fakeFavoriteStorage {
	return &fakeFavoriteStorage{pairs: make(map[[2]uuid.UUID]bool)}
}

func (f *fakeFavoriteStorage) ToggleFavorite(_ context.Context, userID, carID uuid.UUID) (bool, int, error) {
	key := [2]uuid.UUID{userID, carID}
	added := !f.pairs[key]
	if added {
		f.pairs[key] = true
	} else {
		delete(f.pairs, key)
	}

	count := 0
	for pair := range f.pairs {
		if pair[1] == carID {
			count++
		}
	}
	return added, count, nil
}

func (f *fakeFavoriteStorage) ListFavoriteCars(context.Context, uuid.UUID) ([]domain.Car, error) {
	return nil, nil
}

func TestToggleFavorite_AddThenRemove(t *testing.T) {
	car := &domain.Car{ID: uuid.New(), OwnerID: uuid.New(), Slug: "toyota-corolla-abc123", IsActive: true}
	uc := NewFavoriteUseCase(&stubCarStorage{car: car}, newFakeFavoriteStorage(), slog.New(slog.DiscardHandler))

	user := domain.Principal{UserID: uuid.New()}
	ctx := context.Background()

	status, count, err := uc.ToggleFavorite(ctx, user, car.Slug)
	require.NoError(t, err)
	assert.Equal(t, "added", status)
	assert.Equal(t, 1, count)

	status, count, err = uc.ToggleFavorite(ctx, user, car.Slug)
	require.NoError(t, err)
	assert.Equal(t, "removed", status)
	assert.Equal(t, 0, count)
}

func TestToggleFavorite_OwnListingRejected(t *testing.T) {
	owner := domain.Principal{UserID: uuid.New()}
	car := &domain.Car{ID: uuid.New(), OwnerID: owner.UserID, Slug: "my-own-car-abc123", IsActive: true}
	favorites := newFakeFavoriteStorage()
	uc := NewFavoriteUseCase(&stubCarStorage{car: car}, favorites, slog.New(slog.DiscardHandler))

	_, _, err := uc.ToggleFavorite(context.Background(), owner, car.Slug)
	assert.ErrorIs(t, err, domain.ErrOwnFavorite)
	assert.Empty(t, favorites.pairs)
}

func TestToggleFavorite_InactiveListingHidden(t *testing.T) {
	car := &domain.Car{ID: uuid.New(), OwnerID: uuid.New(), Slug: "paused-car-abc123", IsActive: false}
	uc := NewFavoriteUseCase(&stubCarStorage{car: car}, newFakeFavoriteStorage(), slog.New(slog.DiscardHandler))

	_, _, err := uc.ToggleFavorite(context.Background(), domain.Principal{UserID: uuid.New()}, car.Slug)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
