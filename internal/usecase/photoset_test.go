package usecase

import (
	"strings"
	"testing"
	"time"

	"github.com/GoDakar/CarRentApp/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func photoFile() *domain.PhotoFile {
	return &domain.PhotoFile{
		Reader:      strings.NewReader("jpeg bytes"),
		Filename:    "front.jpg",
		ContentType: "image/jpeg",
	}
}

func savedPhoto(order int, cover bool, uploadedAt time.Time) domain.CarPhoto {
	return domain.CarPhoto{
		ID:         uuid.New(),
		CarID:      uuid.New(),
		ImageKey:   "cars/x/photos/2026/08/abc.jpg",
		ImageURL:   "http://localhost:9000/photos/abc.jpg",
		IsCover:    cover,
		Order:      order,
		UploadedAt: uploadedAt,
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	require.Error(t, err)
	errs, ok := err.(validation.Errors)
	require.True(t, ok, "expected field-attributed validation errors, got %T", err)
	return errs
}

func TestValidatePhotoBatch_EmptySubmissionRejected(t *testing.T) {
	errs := fieldErrors(t, ValidatePhotoBatch(nil, nil))
	assert.Contains(t, errs, "photos")
}

func TestValidatePhotoBatch_BoundsOnLiveCount(t *testing.T) {
	// A single insert is the minimum viable set.
	batch := []domain.PhotoInput{{File: photoFile(), IsCover: true}}
	assert.NoError(t, ValidatePhotoBatch(nil, batch))

	// Six inserts still fit.
	batch = nil
	for i := 0; i < domain.MaxPhotos; i++ {
		batch = append(batch, domain.PhotoInput{File: photoFile(), Order: i})
	}
	assert.NoError(t, ValidatePhotoBatch(nil, batch))

	// A seventh photo overflows the set.
	batch = append(batch, domain.PhotoInput{File: photoFile(), Order: 6})
	errs := fieldErrors(t, ValidatePhotoBatch(nil, batch))
	assert.Contains(t, errs, "photos")
}

func TestValidatePhotoBatch_DeletingLastPhotoRejected(t *testing.T) {
	existing := []domain.CarPhoto{savedPhoto(0, true, time.Now())}
	batch := []domain.PhotoInput{{ID: existing[0].ID, Delete: true}}

	errs := fieldErrors(t, ValidatePhotoBatch(existing, batch))
	assert.Contains(t, errs, "photos")

	// Deleting while inserting a replacement keeps the set alive.
	batch = append(batch, domain.PhotoInput{File: photoFile()})
	assert.NoError(t, ValidatePhotoBatch(existing, batch))
}

func TestValidatePhotoBatch_MultipleCoversRejected(t *testing.T) {
	batch := []domain.PhotoInput{
		{File: photoFile(), IsCover: true},
		{File: photoFile(), IsCover: true},
	}
	errs := fieldErrors(t, ValidatePhotoBatch(nil, batch))
	assert.Contains(t, errs, "photos")
}

func TestValidatePhotoBatch_RowLevelErrors(t *testing.T) {
	existing := []domain.CarPhoto{savedPhoto(0, true, time.Now())}

	batch := []domain.PhotoInput{
		{ID: uuid.New()},                    // unknown photo
		{File: photoFile(), Order: -1},      // negative order
		{Delete: true, ID: uuid.Nil, File: photoFile()}, // delete without id
	}
	errs := fieldErrors(t, ValidatePhotoBatch(existing, batch))

	assert.Contains(t, errs, "photos[0].id")
	assert.Contains(t, errs, "photos[1].order")
	assert.Contains(t, errs, "photos[2].id")
}

func TestValidatePhotoBatch_DuplicateReferenceRejected(t *testing.T) {
	existing := []domain.CarPhoto{savedPhoto(0, true, time.Now())}
	batch := []domain.PhotoInput{
		{ID: existing[0].ID, Caption: "first"},
		{ID: existing[0].ID, Caption: "second"},
	}
	errs := fieldErrors(t, ValidatePhotoBatch(existing, batch))
	assert.Contains(t, errs, "photos[1].id")
}

func TestValidatePhotoBatch_BlankRowsIgnored(t *testing.T) {
	existing := []domain.CarPhoto{savedPhoto(0, true, time.Now())}
	// Empty form slots submit blank rows; they must not count as inserts.
	batch := []domain.PhotoInput{{}, {}, {}}
	assert.NoError(t, ValidatePhotoBatch(existing, batch))
}

func TestBuildPhotoPlan_ExplicitCoverWins(t *testing.T) {
	carID := uuid.New()
	now := time.Now()
	existing := []domain.CarPhoto{
		savedPhoto(0, true, now.Add(-time.Hour)),
		savedPhoto(1, false, now),
	}

	batch := []domain.PhotoInput{{ID: existing[1].ID, IsCover: true, Order: 1}}
	plan := BuildPhotoPlan(carID, existing, batch)

	assert.Equal(t, existing[1].ID, plan.CoverID)
	require.Len(t, plan.Upserts, 1)
	assert.Empty(t, plan.Deletes)
}

func TestBuildPhotoPlan_SurvivingCoverKept(t *testing.T) {
	carID := uuid.New()
	now := time.Now()
	existing := []domain.CarPhoto{
		savedPhoto(0, false, now.Add(-time.Hour)),
		savedPhoto(1, true, now),
	}

	// Caption-only edit of the non-cover photo must not steal the cover.
	batch := []domain.PhotoInput{{ID: existing[0].ID, Caption: "side view"}}
	plan := BuildPhotoPlan(carID, existing, batch)

	assert.Equal(t, existing[1].ID, plan.CoverID)
}

func TestBuildPhotoPlan_CoverFallsBackToLowestOrder(t *testing.T) {
	carID := uuid.New()
	now := time.Now()
	existing := []domain.CarPhoto{
		savedPhoto(2, false, now.Add(-2*time.Hour)),
		savedPhoto(1, true, now.Add(-time.Hour)),
		savedPhoto(3, false, now),
	}

	// Deleting the cover promotes the survivor with the lowest order.
	batch := []domain.PhotoInput{{ID: existing[1].ID, Delete: true}}
	plan := BuildPhotoPlan(carID, existing, batch)

	assert.Equal(t, existing[0].ID, plan.CoverID)
	assert.Equal(t, []uuid.UUID{existing[1].ID}, plan.Deletes)
	assert.Equal(t, []string{existing[1].ImageKey}, plan.RemovedKeys)
}

func TestBuildPhotoPlan_InsertGetsIdentityAndUpload(t *testing.T) {
	carID := uuid.New()
	batch := []domain.PhotoInput{{
		File:     photoFile(),
		Caption:  "front",
		IsCover:  true,
		Order:    0,
		ImageKey: "cars/1/photos/2026/08/deadbeef.jpg",
		ImageURL: "http://localhost:9000/photos/deadbeef.jpg",
	}}

	plan := BuildPhotoPlan(carID, nil, batch)

	require.Len(t, plan.Upserts, 1)
	row := plan.Upserts[0]
	assert.NotEqual(t, uuid.Nil, row.ID)
	assert.Equal(t, carID, row.CarID)
	assert.Equal(t, "cars/1/photos/2026/08/deadbeef.jpg", row.ImageKey)
	assert.Equal(t, row.ID, plan.CoverID)
}

func TestBuildPhotoPlan_UntouchedRowsSurviveUnchanged(t *testing.T) {
	carID := uuid.New()
	now := time.Now()
	existing := []domain.CarPhoto{
		savedPhoto(0, true, now.Add(-time.Hour)),
		savedPhoto(1, false, now),
	}

	// An insert-only batch leaves the stored rows alone.
	batch := []domain.PhotoInput{{File: photoFile(), Order: 2, ImageKey: "k", ImageURL: "u"}}
	plan := BuildPhotoPlan(carID, existing, batch)

	require.Len(t, plan.Upserts, 1)
	assert.Empty(t, plan.Deletes)
	assert.Equal(t, existing[0].ID, plan.CoverID)
}

func TestSortForDisplay_CoverFirstThenOrder(t *testing.T) {
	now := time.Now()
	a := savedPhoto(2, false, now)
	b := savedPhoto(0, false, now)
	c := savedPhoto(5, true, now)

	photos := []domain.CarPhoto{a, b, c}
	SortForDisplay(photos)

	assert.Equal(t, c.ID, photos[0].ID)
	assert.Equal(t, b.ID, photos[1].ID)
	assert.Equal(t, a.ID, photos[2].ID)
}
