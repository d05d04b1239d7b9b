package slug

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChecker struct {
	existing map[string]uuid.UUID
	err      error
}

func (f *fakeChecker) SlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	id, ok := f.existing[slug]
	if !ok {
		return false, nil
	}
	return id != exclude, nil
}

func TestListingGeneratorAlwaysSuffixes(t *testing.T) {
	gen := NewListingGenerator(&fakeChecker{existing: map[string]uuid.UUID{}})

	got, err := gen.Generate(context.Background(), "Toyota Corolla 2020 Toyota Corolla 2020", uuid.Nil)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^toyota-corolla-2020-toyota-corolla-2020-[0-9a-f]{6}$`), got)
}

func TestLandingGeneratorPlainWhenFree(t *testing.T) {
	gen := NewLandingGenerator(&fakeChecker{existing: map[string]uuid.UUID{}})

	got, err := gen.Generate(context.Background(), "Location voiture Dakar", uuid.Nil)
	require.NoError(t, err)
	assert.Equal(t, "location-voiture-dakar", got)
}

func TestLandingGeneratorSuffixesOnCollision(t *testing.T) {
	gen := NewLandingGenerator(&fakeChecker{existing: map[string]uuid.UUID{
		"location-voiture-dakar": uuid.New(),
	}})

	got, err := gen.Generate(context.Background(), "Location voiture Dakar", uuid.Nil)
	require.NoError(t, err)

	assert.NotEqual(t, "location-voiture-dakar", got)
	assert.Regexp(t, regexp.MustCompile(`^location-voiture-dakar-[0-9a-f]{6}$`), got)
}

func TestLandingGeneratorExcludesSelf(t *testing.T) {
	self := uuid.New()
	gen := NewLandingGenerator(&fakeChecker{existing: map[string]uuid.UUID{
		"location-voiture-dakar": self,
	}})

	got, err := gen.Generate(context.Background(), "Location voiture Dakar", self)
	require.NoError(t, err)
	assert.Equal(t, "location-voiture-dakar", got)
}

func TestGenerateSurfacesProbeError(t *testing.T) {
	probeErr := errors.New("db down")
	gen := NewLandingGenerator(&fakeChecker{err: probeErr})

	_, err := gen.Generate(context.Background(), "whatever", uuid.Nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, probeErr)
}

func TestNormalizeFallback(t *testing.T) {
	assert.Equal(t, Fallback, Normalize("!!!", 180))
	assert.Equal(t, Fallback, Normalize("", 180))
}

func TestNormalizeTruncates(t *testing.T) {
	long := strings.Repeat("toyota ", 40)
	got := Normalize(long, 150)
	assert.LessOrEqual(t, len(got), 150)
	assert.False(t, strings.HasSuffix(got, "-"))
}
