package slug

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	goslug "github.com/goliatone/go-slug"
	"github.com/google/uuid"
)

// Fallback is used when normalization leaves nothing of the base text.
const Fallback = "page"

const suffixLen = 6

// Checker probes the storage layer for slug collisions. The record being
// updated is excluded so a record never collides with itself.
type Checker interface {
	SlugExists(ctx context.Context, slug string, exclude uuid.UUID) (bool, error)
}

// Generator produces unique URL-safe slugs from human titles.
//
// Listing slugs always carry a random suffix (stable permalinks that are not
// purely derived from the title); landing-page slugs only get one when the
// plain candidate collides.
type Generator struct {
	checker      Checker
	maxBase      int
	alwaysSuffix bool
}

// NewListingGenerator returns the generator used for car listings: a longer
// base budget (title+brand+model+year fits) and an unconditional suffix.
func NewListingGenerator(c Checker) *Generator {
	return &Generator{checker: c, maxBase: 150, alwaysSuffix: true}
}

// NewLandingGenerator returns the generator used for landing pages.
func NewLandingGenerator(c Checker) *Generator {
	return &Generator{checker: c, maxBase: 180}
}

// Generate normalizes base into a slug and guarantees uniqueness against the
// checker, excluding the record identified by exclude. It never returns an
// empty slug. The only failure mode is the uniqueness probe itself.
func (g *Generator) Generate(ctx context.Context, base string, exclude uuid.UUID) (string, error) {
	normalized := Normalize(base, g.maxBase)

	candidate := normalized
	if g.alwaysSuffix {
		candidate = normalized + "-" + randomSuffix()
	}

	for {
		exists, err := g.checker.SlugExists(ctx, candidate, exclude)
		if err != nil {
			return "", fmt.Errorf("slug uniqueness probe for %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = normalized + "-" + randomSuffix()
	}
}

// Normalize lowercases and hyphenates text into a URL-safe token truncated to
// maxLen, substituting the fallback token when nothing survives.
func Normalize(text string, maxLen int) string {
	normalized, err := goslug.Normalize(text)
	if err != nil || normalized == "" {
		normalized = Fallback
	}
	if len(normalized) > maxLen {
		normalized = strings.TrimRight(normalized[:maxLen], "-")
	}
	return normalized
}

func randomSuffix() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])[:suffixLen]
}
