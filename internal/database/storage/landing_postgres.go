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
)

// LandingStorage is the sqlx-backed landing-page store.
type LandingStorage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

func NewLandingStorage(db *sqlx.DB, logger *slog.Logger) *LandingStorage {
	return &LandingStorage{db: db, logger: logger}
}

func (s *LandingStorage) CreateLandingPage(ctx context.Context, page *domain.LandingPage) error {
	page.CreatedAt = time.Now()
	page.UpdatedAt = page.CreatedAt

	const query = `
	INSERT INTO landing_pages (id, kind, title, slug, keyword, position, city_id,
		region, body_type, content, meta_title, meta_description, is_active,
		created_at, updated_at)
	VALUES (:id, :kind, :title, :slug, :keyword, :position, :city_id,
		:region, :body_type, :content, :meta_title, :meta_description, :is_active,
		:created_at, :updated_at)
	`
	if _, err := s.db.NamedExecContext(ctx, query, page); err != nil {
		s.logger.Error("failed to insert landing page", "page_id", page.ID, "error", err)
		return fmt.Errorf("inserting landing page: %w", err)
	}

	s.logger.Info("landing page saved", "page_id", page.ID, "slug", page.Slug)
	return nil
}

func (s *LandingStorage) UpdateLandingPage(ctx context.Context, page *domain.LandingPage) error {
	page.UpdatedAt = time.Now()

	const query = `
	UPDATE landing_pages SET
		kind = :kind, title = :title, slug = :slug, keyword = :keyword,
		position = :position, city_id = :city_id, region = :region,
		body_type = :body_type, content = :content, meta_title = :meta_title,
		meta_description = :meta_description, is_active = :is_active,
		updated_at = :updated_at
	WHERE id = :id
	`
	res, err := s.db.NamedExecContext(ctx, query, page)
	if err != nil {
		s.logger.Error("failed to update landing page", "page_id", page.ID, "error", err)
		return fmt.Errorf("updating landing page: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}

	s.logger.Info("landing page updated", "page_id", page.ID, "slug", page.Slug)
	return nil
}

func (s *LandingStorage) DeleteLandingPage(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM landing_pages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting landing page: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *LandingStorage) GetLandingPageByID(ctx context.Context, id uuid.UUID) (*domain.LandingPage, error) {
	var page domain.LandingPage
	err := s.db.GetContext(ctx, &page, `SELECT * FROM landing_pages WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading landing page: %w", err)
	}
	return &page, nil
}

func (s *LandingStorage) GetLandingPageBySlug(ctx context.Context, slug string, activeOnly bool) (*domain.LandingPage, error) {
	query := `SELECT * FROM landing_pages WHERE slug = $1`
	if activeOnly {
		query += ` AND is_active`
	}

	var page domain.LandingPage
	err := s.db.GetContext(ctx, &page, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("loading landing page by slug: %w", err)
	}
	return &page, nil
}

func (s *LandingStorage) ListLandingPages(ctx context.Context, activeOnly bool) ([]domain.LandingPage, error) {
	query := `SELECT * FROM landing_pages`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY position NULLS LAST, title`

	var pages []domain.LandingPage
	if err := s.db.SelectContext(ctx, &pages, query); err != nil {
		return nil, fmt.Errorf("listing landing pages: %w", err)
	}
	return pages, nil
}

func (s *LandingStorage) SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM landing_pages WHERE slug = $1 AND id <> $2)`, slug, exclude)
	if err != nil {
		return false, fmt.Errorf("probing landing page slug: %w", err)
	}
	return exists, nil
}
