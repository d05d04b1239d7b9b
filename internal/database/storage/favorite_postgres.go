package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// FavoriteStorage is the sqlx-backed favorites store; (user_id, car_id) is
// unique at the table level.
type FavoriteStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewFavoriteStorage(db *sqlx.DB, logger *slog.Logger) *FavoriteStorage {
	return &FavoriteStorage{db: db, logger: logger}
}

// ToggleFavorite inserts the pair or, if it already exists, removes it. The
// insert relies on ON CONFLICT DO NOTHING so two concurrent toggles cannot
// create a duplicate pair.
func (s *FavoriteStorage) ToggleFavorite(ctx context.Context, userID, carID uuid.UUID) (bool, int, error) {
	var added bool

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO favorites (user_id, car_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, car_id) DO NOTHING`, userID, carID)
	if err != nil {
		return false, 0, fmt.Errorf("inserting favorite: %w", err)
	}

	if n, _ := res.RowsAffected(); n > 0 {
		added = true
	} else {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM favorites WHERE user_id = $1 AND car_id = $2`, userID, carID); err != nil {
			return false, 0, fmt.Errorf("removing favorite: %w", err)
		}
	}

	var count int
	if err := tx.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM favorites WHERE car_id = $1`, carID); err != nil {
		return false, 0, fmt.Errorf("counting favorites: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("committing favorite toggle: %w", err)
	}
	return added, count, nil
}

// ListFavoriteCars returns the user's favorited cars, most recently
// favorited first.
func (s *FavoriteStorage) ListFavoriteCars(ctx context.Context, userID uuid.UUID) ([]domain.Car, error) {
	query := carSelect + `
	JOIN favorites fav ON fav.car_id = c.id
	WHERE fav.user_id = $1
	ORDER BY fav.created_at DESC`

	var cars []domain.Car
	if err := s.db.SelectContext(ctx, &cars, query, userID); err != nil {
		return nil, fmt.Errorf("listing favorite cars: %w", err)
	}
	return cars, nil
}
