package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoDakar/CarRentApp/internal/core/ports"
	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/GoDakar/CarRentApp/internal/slug"
	"github.com/google/uuid"
)

// landingInteractor implements LandingUseCase.
type landingInteractor struct {
	pages  ports.LandingStorage
	slugs  *slug.Generator
	logger *slog.Logger
}

// NewLandingUseCase wires the SEO landing-page curation surface.
func NewLandingUseCase(pages ports.LandingStorage, logger *slog.Logger) LandingUseCase {
	return &landingInteractor{
		pages:  pages,
		slugs:  slug.NewLandingGenerator(pages),
		logger: logger,
	}
}

func (uc *landingInteractor) CreateLandingPage(ctx context.Context, principal domain.Principal, input LandingInput) (*domain.LandingPage, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}

	page := &domain.LandingPage{ID: uuid.New(), IsActive: true}
	applyLandingInput(page, input)

	if err := NormalizeLandingPage(page); err != nil {
		return nil, err
	}

	var err error
	page.Slug, err = uc.slugs.Generate(ctx, page.Title, page.ID)
	if err != nil {
		return nil, fmt.Errorf("assigning landing page slug: %w", err)
	}

	if err := uc.pages.CreateLandingPage(ctx, page); err != nil {
		return nil, fmt.Errorf("persisting landing page: %w", err)
	}

	uc.logger.Info("landing page created", "page_id", page.ID, "kind", page.Kind, "slug", page.Slug)
	return page, nil
}

func (uc *landingInteractor) UpdateLandingPage(ctx context.Context, principal domain.Principal, id uuid.UUID, input LandingInput) (*domain.LandingPage, error) {
	if !principal.IsStaff {
		return nil, domain.ErrForbidden
	}

	page, err := uc.pages.GetLandingPageByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldTitle := page.Title
	applyLandingInput(page, input)

	if err := NormalizeLandingPage(page); err != nil {
		return nil, err
	}

	// Slug regenerates only when the title changed; other edits keep the
	// permalink stable.
	if page.Title != oldTitle {
		page.Slug, err = uc.slugs.Generate(ctx, page.Title, page.ID)
		if err != nil {
			return nil, fmt.Errorf("regenerating landing page slug: %w", err)
		}
	}

	if err := uc.pages.UpdateLandingPage(ctx, page); err != nil {
		return nil, fmt.Errorf("persisting landing page update: %w", err)
	}

	uc.logger.Info("landing page updated", "page_id", page.ID, "slug", page.Slug)
	return page, nil
}

func (uc *landingInteractor) DeleteLandingPage(ctx context.Context, principal domain.Principal, id uuid.UUID) error {
	if !principal.IsStaff {
		return domain.ErrForbidden
	}
	if err := uc.pages.DeleteLandingPage(ctx, id); err != nil {
		return err
	}
	uc.logger.Info("landing page deleted", "page_id", id)
	return nil
}

func (uc *landingInteractor) GetLandingPage(ctx context.Context, slugID string) (*domain.LandingPage, error) {
	return uc.pages.GetLandingPageBySlug(ctx, slugID, true)
}

func (uc *landingInteractor) ListLandingPages(ctx context.Context, activeOnly bool) ([]domain.LandingPage, error) {
	return uc.pages.ListLandingPages(ctx, activeOnly)
}

func applyLandingInput(page *domain.LandingPage, input LandingInput) {
	page.Kind = input.Kind
	page.Title = input.Title
	page.Keyword = input.Keyword
	page.Position = input.Position
	page.CityID = input.CityID
	page.Region = input.Region
	page.BodyType = input.BodyType
	page.Content = input.Content
	page.MetaTitle = input.MetaTitle
	page.MetaDescription = input.MetaDescription
	if input.IsActive != nil {
		page.IsActive = *input.IsActive
	}
}
