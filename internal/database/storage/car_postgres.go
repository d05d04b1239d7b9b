package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const carSelect = `
SELECT c.*,
       b.name   AS brand_name,
       m.name   AS model_name,
       ci.name  AS city_name,
       p.region AS region,
       (SELECT COUNT(*) FROM favorites f WHERE f.car_id = c.id) AS favorite_count
FROM cars c
JOIN brands b      ON b.id = c.brand_id
JOIN car_models m  ON m.id = c.model_id
JOIN places p      ON p.id = c.place_id
JOIN cities ci     ON ci.id = p.city_id
`

// CarStorage is the sqlx-backed listing store. All writes of one submission
// (record, feature links, photo plan) share a single transaction.
type CarStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewCarStorage(db *sqlx.DB, logger *slog.Logger) *CarStorage {
	return &CarStorage{db: db, logger: logger}
}

// CreateCar persists a new listing with its feature links and photo plan.
func (s *CarStorage) CreateCar(ctx context.Context, car *domain.Car, featureIDs []int64, plan *domain.PhotoPlan) error {
	start := time.Now()

	car.CreatedAt = time.Now()
	car.UpdatedAt = car.CreatedAt

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		const query = `
		INSERT INTO cars (id, owner_id, title, slug, brand_id, model_id, year,
			body_type, transmission, fuel_type, seats, doors, mileage_km, color,
			description, place_id, daily_price, is_active, is_featured, created_at, updated_at)
		VALUES (:id, :owner_id, :title, :slug, :brand_id, :model_id, :year,
			:body_type, :transmission, :fuel_type, :seats, :doors, :mileage_km, :color,
			:description, :place_id, :daily_price, :is_active, :is_featured, :created_at, :updated_at)
		`
		if _, err := tx.NamedExecContext(ctx, query, car); err != nil {
			return fmt.Errorf("inserting car: %w", err)
		}
		if err := replaceFeatureLinks(ctx, tx, car.ID, featureIDs); err != nil {
			return err
		}
		return applyPhotoPlan(ctx, tx, car.ID, plan)
	})
	if err != nil {
		s.logger.Error("failed to create car", "car_id", car.ID, "error", err)
		return err
	}

	s.logger.Info("car created",
		"car_id", car.ID,
		"slug", car.Slug,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// UpdateCar persists listing changes, feature links and the photo plan.
func (s *CarStorage) UpdateCar(ctx context.Context, car *domain.Car, featureIDs []int64, plan *domain.PhotoPlan) error {
	start := time.Now()

	car.UpdatedAt = time.Now()

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		const query = `
		UPDATE cars SET
			title = :title, brand_id = :brand_id, model_id = :model_id, year = :year,
			body_type = :body_type, transmission = :transmission, fuel_type = :fuel_type,
			seats = :seats, doors = :doors, mileage_km = :mileage_km, color = :color,
			description = :description, place_id = :place_id, daily_price = :daily_price,
			is_active = :is_active, is_featured = :is_featured, updated_at = :updated_at
		WHERE id = :id
		`
		res, err := tx.NamedExecContext(ctx, query, car)
		if err != nil {
			return fmt.Errorf("updating car: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return domain.ErrNotFound
		}
		if err := replaceFeatureLinks(ctx, tx, car.ID, featureIDs); err != nil {
			return err
		}
		return applyPhotoPlan(ctx, tx, car.ID, plan)
	})
	if err != nil {
		s.logger.Error("failed to update car", "car_id", car.ID, "error", err)
		return err
	}

	s.logger.Info("car updated",
		"car_id", car.ID,
		"slug", car.Slug,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// DeleteCar removes the listing; photo rows, feature links and favorites go
// with it via cascading foreign keys. Returns the removed image keys.
func (s *CarStorage) DeleteCar(ctx context.Context, id uuid.UUID) ([]string, error) {
	var keys []string
	if err := s.db.SelectContext(ctx, &keys,
		`SELECT image_key FROM car_photos WHERE car_id = $1`, id); err != nil {
		return nil, fmt.Errorf("collecting image keys: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete car", "car_id", id, "error", err)
		return nil, fmt.Errorf("deleting car: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrNotFound
	}

	s.logger.Info("car deleted", "car_id", id, "photos_removed", len(keys))
	return keys, nil
}

func (s *CarStorage) GetCarByID(ctx context.Context, id uuid.UUID) (*domain.Car, error) {
	return s.getCar(ctx, carSelect+` WHERE c.id = $1`, id)
}

func (s *CarStorage) GetCarBySlug(ctx context.Context, slug string, activeOnly bool) (*domain.Car, error) {
	query := carSelect + ` WHERE c.slug = $1`
	if activeOnly {
		query += ` AND c.is_active`
	}
	return s.getCar(ctx, query, slug)
}

func (s *CarStorage) getCar(ctx context.Context, query string, arg interface{}) (*domain.Car, error) {
	var car domain.Car
	if err := s.db.GetContext(ctx, &car, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading car: %w", err)
	}

	photos, err := s.PhotosByCar(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	car.Photos = photos

	if err := s.db.SelectContext(ctx, &car.Features, `
		SELECT f.id, f.name, f.icon, f.slug
		FROM car_features f
		JOIN car_feature_links l ON l.feature_id = f.id
		WHERE l.car_id = $1
		ORDER BY f.name`, car.ID); err != nil {
		return nil, fmt.Errorf("loading car features: %w", err)
	}

	return &car, nil
}

// ListCars returns listings matching the filter, newest first. Public feeds
// only see active listings; the owner feed includes the owner's deactivated
// listings so they stay reachable for editing and re-activation.
func (s *CarStorage) ListCars(ctx context.Context, filter domain.CarFilter) ([]domain.Car, error) {
	clause, args := carListClause(filter)

	var cars []domain.Car
	if err := s.db.SelectContext(ctx, &cars, carSelect+clause, args...); err != nil {
		return nil, fmt.Errorf("listing cars: %w", err)
	}
	return s.attachCovers(ctx, cars)
}

// carListClause renders the WHERE and paging tail of a listing query.
func carListClause(filter domain.CarFilter) (string, []interface{}) {
	args := []interface{}{}

	var query string
	if filter.OwnerID != uuid.Nil {
		args = append(args, filter.OwnerID)
		query = fmt.Sprintf(" WHERE c.owner_id = $%d", len(args))
	} else {
		query = " WHERE c.is_active"
	}
	if filter.BodyType != "" {
		args = append(args, filter.BodyType)
		query += fmt.Sprintf(" AND c.body_type = $%d", len(args))
	}
	if filter.Region != "" {
		args = append(args, filter.Region)
		query += fmt.Sprintf(" AND p.region = $%d", len(args))
	}

	args = append(args, filter.PerPage, (filter.Page-1)*filter.PerPage)
	query += fmt.Sprintf(" ORDER BY c.created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return query, args
}

func (s *CarStorage) ListLatestCars(ctx context.Context, limit int) ([]domain.Car, error) {
	var cars []domain.Car
	query := carSelect + ` WHERE c.is_active ORDER BY c.created_at DESC LIMIT $1`
	if err := s.db.SelectContext(ctx, &cars, query, limit); err != nil {
		return nil, fmt.Errorf("listing latest cars: %w", err)
	}
	return s.attachCovers(ctx, cars)
}

func (s *CarStorage) ListTopCars(ctx context.Context, limit int) ([]domain.Car, error) {
	var cars []domain.Car
	query := carSelect + ` WHERE c.is_active ORDER BY c.is_featured DESC, c.created_at DESC LIMIT $1`
	if err := s.db.SelectContext(ctx, &cars, query, limit); err != nil {
		return nil, fmt.Errorf("listing top cars: %w", err)
	}
	return s.attachCovers(ctx, cars)
}

func (s *CarStorage) ListSimilarCars(ctx context.Context, region domain.Region, exclude uuid.UUID, limit int) ([]domain.Car, error) {
	var cars []domain.Car
	query := carSelect + ` WHERE c.is_active AND p.region = $1 AND c.id <> $2 ORDER BY c.created_at DESC LIMIT $3`
	if err := s.db.SelectContext(ctx, &cars, query, region, exclude, limit); err != nil {
		return nil, fmt.Errorf("listing similar cars: %w", err)
	}
	return s.attachCovers(ctx, cars)
}

// PhotosByCar returns the car's photos in display order: cover first, then
// ascending display order, id as the tie-break.
func (s *CarStorage) PhotosByCar(ctx context.Context, carID uuid.UUID) ([]domain.CarPhoto, error) {
	var photos []domain.CarPhoto
	if err := s.db.SelectContext(ctx, &photos, `
		SELECT * FROM car_photos
		WHERE car_id = $1
		ORDER BY is_cover DESC, display_order ASC, id ASC`, carID); err != nil {
		return nil, fmt.Errorf("loading photos: %w", err)
	}
	return photos, nil
}

func (s *CarStorage) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM cars WHERE slug = $1 AND id <> $2)`, slug, exclude)
	if err != nil {
		return false, fmt.Errorf("probing car slug: %w", err)
	}
	return exists, nil
}

func (s *CarStorage) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// attachCovers loads only the cover photo for list views.
func (s *CarStorage) attachCovers(ctx context.Context, cars []domain.Car) ([]domain.Car, error) {
	if len(cars) == 0 {
		return cars, nil
	}
	ids := make([]uuid.UUID, len(cars))
	for i, c := range cars {
		ids[i] = c.ID
	}

	var covers []domain.CarPhoto
	if err := s.db.SelectContext(ctx, &covers, `
		SELECT * FROM car_photos
		WHERE car_id = ANY($1) AND is_cover`, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("loading cover photos: %w", err)
	}

	byCar := make(map[uuid.UUID]domain.CarPhoto, len(covers))
	for _, p := range covers {
		byCar[p.CarID] = p
	}
	for i := range cars {
		if cover, ok := byCar[cars[i].ID]; ok {
			cars[i].Photos = []domain.CarPhoto{cover}
		}
	}
	return cars, nil
}

func replaceFeatureLinks(ctx context.Context, tx *sqlx.Tx, carID uuid.UUID, featureIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM car_feature_links WHERE car_id = $1`, carID); err != nil {
		return fmt.Errorf("clearing feature links: %w", err)
	}
	for _, fid := range featureIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO car_feature_links (car_id, feature_id) VALUES ($1, $2)`, carID, fid); err != nil {
			return fmt.Errorf("linking feature %d: %w", fid, err)
		}
	}
	return nil
}

// applyPhotoPlan executes the reconciled batch: deletes, upserts (demoted),
// then the cover change. Siblings are demoted before the cover row is
// promoted so the partial unique index holds after every statement; a single
// UPDATE flipping both rows can visit the new cover first and trip the index
// mid-statement.
func applyPhotoPlan(ctx context.Context, e sqlx.ExtContext, carID uuid.UUID, plan *domain.PhotoPlan) error {
	if plan == nil {
		return nil
	}

	if len(plan.Deletes) > 0 {
		if _, err := e.ExecContext(ctx,
			`DELETE FROM car_photos WHERE car_id = $1 AND id = ANY($2)`,
			carID, pq.Array(plan.Deletes)); err != nil {
			return fmt.Errorf("deleting photos: %w", err)
		}
	}

	const upsert = `
	INSERT INTO car_photos (id, car_id, image_key, image_url, caption, is_cover, display_order, uploaded_at)
	VALUES (:id, :car_id, :image_key, :image_url, :caption, FALSE, :display_order, :uploaded_at)
	ON CONFLICT (id) DO UPDATE SET
		caption = EXCLUDED.caption,
		display_order = EXCLUDED.display_order,
		is_cover = FALSE
	`
	for _, photo := range plan.Upserts {
		if _, err := sqlx.NamedExecContext(ctx, e, upsert, photo); err != nil {
			return fmt.Errorf("upserting photo %s: %w", photo.ID, err)
		}
	}

	if plan.CoverID == uuid.Nil {
		return nil
	}

	if _, err := e.ExecContext(ctx,
		`UPDATE car_photos SET is_cover = FALSE WHERE car_id = $1 AND is_cover AND id <> $2`,
		carID, plan.CoverID); err != nil {
		return fmt.Errorf("demoting previous cover: %w", err)
	}
	if _, err := e.ExecContext(ctx,
		`UPDATE car_photos SET is_cover = TRUE WHERE id = $1 AND car_id = $2`,
		plan.CoverID, carID); err != nil {
		return fmt.Errorf("promoting cover photo: %w", err)
	}
	return nil
}
