package usecase

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/GoDakar/CarRentApp/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// The photo set manager reconciles a submitted batch of photo operations
// (insert, metadata update, delete) against a listing's current photo set.
// Validation never mutates anything; the plan it produces is applied by the
// storage layer inside the listing's transaction.

// ValidatePhotoBatch checks the batch against the car's current photos and
// returns field-attributed validation errors. Rules:
//
//   - the resulting live photo count must stay within [MinPhotos, MaxPhotos]
//   - at most one photo in the batch may be marked as cover
//   - display order must be >= 0
//   - updates and deletes must reference photos that exist
//   - inserts must carry an image
func ValidatePhotoBatch(existing []domain.CarPhoto, batch []domain.PhotoInput) error {
	errs := validation.Errors{}

	known := make(map[uuid.UUID]bool, len(existing))
	for _, p := range existing {
		known[p.ID] = true
	}

	live := len(existing)
	covers := 0
	touched := make(map[uuid.UUID]bool, len(batch))

	for i, in := range batch {
		if isBlankInput(in) {
			continue
		}
		if in.ID != uuid.Nil && !known[in.ID] {
			errs[fmt.Sprintf("photos[%d].id", i)] = errors.New("unknown photo")
			continue
		}
		if in.ID != uuid.Nil {
			if touched[in.ID] {
				errs[fmt.Sprintf("photos[%d].id", i)] = errors.New("photo referenced twice in the same batch")
				continue
			}
			touched[in.ID] = true
		}

		if in.Delete {
			if in.ID == uuid.Nil {
				errs[fmt.Sprintf("photos[%d].id", i)] = errors.New("cannot delete a photo that was never saved")
				continue
			}
			live--
			continue
		}

		if in.ID == uuid.Nil {
			if in.File == nil {
				errs[fmt.Sprintf("photos[%d].image", i)] = errors.New("an image file is required")
				continue
			}
			live++
		}

		if in.Order < 0 {
			errs[fmt.Sprintf("photos[%d].order", i)] = errors.New("order must be >= 0")
		}
		if in.IsCover {
			covers++
		}
	}

	if covers > 1 {
		errs["photos"] = errors.New("select a single cover photo")
	} else if live < domain.MinPhotos {
		errs["photos"] = errors.New("add at least one photo")
	} else if live > domain.MaxPhotos {
		errs["photos"] = fmt.Errorf("a listing can have at most %d photos", domain.MaxPhotos)
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// BuildPhotoPlan turns a validated batch into the exact writes to apply.
// Inserts must already carry their ImageKey/ImageURL from the upload step.
//
// Cover resolution, in priority order: the cover explicitly set in this batch
// (last writer wins across sequential saves; siblings are demoted in the same
// transaction), otherwise a surviving photo that already is the cover,
// otherwise the photo with the lowest (order, upload time, id).
func BuildPhotoPlan(carID uuid.UUID, existing []domain.CarPhoto, batch []domain.PhotoInput) *domain.PhotoPlan {
	plan := &domain.PhotoPlan{}
	now := time.Now()

	byID := make(map[uuid.UUID]domain.CarPhoto, len(existing))
	for _, p := range existing {
		byID[p.ID] = p
	}

	deleted := make(map[uuid.UUID]bool)
	inBatch := make(map[uuid.UUID]bool)

	var survivors []domain.CarPhoto
	var explicitCover uuid.UUID

	for _, in := range batch {
		if isBlankInput(in) {
			continue
		}
		if in.Delete {
			deleted[in.ID] = true
			plan.Deletes = append(plan.Deletes, in.ID)
			if prev, ok := byID[in.ID]; ok && prev.ImageKey != "" {
				plan.RemovedKeys = append(plan.RemovedKeys, prev.ImageKey)
			}
			continue
		}

		var row domain.CarPhoto
		if in.ID == uuid.Nil {
			row = domain.CarPhoto{
				ID:         uuid.New(),
				CarID:      carID,
				ImageKey:   in.ImageKey,
				ImageURL:   in.ImageURL,
				UploadedAt: now,
			}
		} else {
			row = byID[in.ID]
			inBatch[in.ID] = true
		}
		row.Caption = in.Caption
		row.IsCover = in.IsCover
		row.Order = in.Order

		if in.IsCover {
			explicitCover = row.ID
		}
		plan.Upserts = append(plan.Upserts, row)
		survivors = append(survivors, row)
	}

	// Untouched rows survive with their stored state.
	for _, p := range existing {
		if !deleted[p.ID] && !inBatch[p.ID] {
			survivors = append(survivors, p)
		}
	}

	plan.CoverID = resolveCover(explicitCover, survivors)
	return plan
}

func resolveCover(explicit uuid.UUID, survivors []domain.CarPhoto) uuid.UUID {
	if explicit != uuid.Nil {
		return explicit
	}
	for _, p := range survivors {
		if p.IsCover {
			return p.ID
		}
	}
	if len(survivors) == 0 {
		return uuid.Nil
	}
	sorted := make([]domain.CarPhoto, len(survivors))
	copy(sorted, survivors)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		if !sorted[i].UploadedAt.Equal(sorted[j].UploadedAt) {
			return sorted[i].UploadedAt.Before(sorted[j].UploadedAt)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})
	return sorted[0].ID
}

// SortForDisplay orders photos for the read side: cover first, then ascending
// order, then id as the tie-break.
func SortForDisplay(photos []domain.CarPhoto) {
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].IsCover != photos[j].IsCover {
			return photos[i].IsCover
		}
		if photos[i].Order != photos[j].Order {
			return photos[i].Order < photos[j].Order
		}
		return photos[i].ID.String() < photos[j].ID.String()
	})
}

// Blank rows (no id, no file, no delete flag) come from empty form slots and
// are ignored, matching the submission form's extra rows.
func isBlankInput(in domain.PhotoInput) bool {
	return in.ID == uuid.Nil && in.File == nil && !in.Delete
}
