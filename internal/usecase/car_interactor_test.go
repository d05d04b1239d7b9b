package usecase

import (
	"context"
	"log/slog"
	"testing"

	"github.com/GoDakar/CarRentApp/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Catalog pages are a fixed size; a per_page sent by the client must not
// widen (or shrink) what the storage layer is asked for.
func TestListCars_PageSizeFixed(t *testing.T) {
	store := &stubCarStorage{}
	uc := NewCarUseCase(store, nil, nil, nil, slog.New(slog.DiscardHandler))

	_, err := uc.ListCars(context.Background(), domain.CarFilter{Page: 3, PerPage: 100})
	require.NoError(t, err)

	assert.Equal(t, 12, store.lastFilter.PerPage)
	assert.Equal(t, 3, store.lastFilter.Page)
}

func TestListCars_DefaultsToFirstPage(t *testing.T) {
	store := &stubCarStorage{}
	uc := NewCarUseCase(store, nil, nil, nil, slog.New(slog.DiscardHandler))

	_, err := uc.ListCars(context.Background(), domain.CarFilter{})
	require.NoError(t, err)

	assert.Equal(t, 1, store.lastFilter.Page)
	assert.Equal(t, 12, store.lastFilter.PerPage)
}
