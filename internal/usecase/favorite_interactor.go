package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoDakar/CarRentApp/internal/core/ports"
	"github.com/GoDakar/CarRentApp/internal/domain"
)

// favoriteInteractor implements FavoriteUseCase.
type favoriteInteractor struct {
	cars      ports.CarStorage
	favorites ports.FavoriteStorage
	logger    *slog.Logger
}

// NewFavoriteUseCase wires the favorite toggle and listing surface.
func NewFavoriteUseCase(cars ports.CarStorage, favorites ports.FavoriteStorage, logger *slog.Logger) FavoriteUseCase {
	return &favoriteInteractor{cars: cars, favorites: favorites, logger: logger}
}

func (uc *favoriteInteractor) ToggleFavorite(ctx context.Context, principal domain.Principal, slugID string) (string, int, error) {
	car, err := uc.cars.GetCarBySlug(ctx, slugID, true)
	if err != nil {
		return "", 0, err
	}
	if car.OwnerID == principal.UserID {
		return "", 0, domain.ErrOwnFavorite
	}

	added, count, err := uc.favorites.ToggleFavorite(ctx, principal.UserID, car.ID)
	if err != nil {
		return "", 0, fmt.Errorf("toggling favorite: %w", err)
	}

	status := "removed"
	if added {
		status = "added"
	}

	uc.logger.Info("favorite toggled",
		"car_id", car.ID,
		"user_id", principal.UserID,
		"status", status,
		"count", count,
	)
	return status, count, nil
}

func (uc *favoriteInteractor) ListFavoriteCars(ctx context.Context, principal domain.Principal) ([]domain.Car, error) {
	return uc.favorites.ListFavoriteCars(ctx, principal.UserID)
}
