package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// UniqueID returns prefix plus a short random suffix.
func UniqueID(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SpeciesOption customizes a seeded species row.
type SpeciesOption func(*seedSpecies)

type seedSpecies struct {
	domain.Species
	rarity         *string
	cacheExpiresAt *time.Time
}

// WithRange sets the bounding box columns.
func WithRange(box domain.BoundingBox) SpeciesOption {
	return func(s *seedSpecies) { s.Range = &box }
}

// WithRegion sets the region column.
func WithRegion(region string) SpeciesOption {
	return func(s *seedSpecies) { s.Region = region }
}

// WithCategory sets the category column.
func WithCategory(c domain.Category) SpeciesOption {
	return func(s *seedSpecies) { s.Category = c }
}

// WithConservationStatus sets the raw conservation_status column.
func WithConservationStatus(status string) SpeciesOption {
	return func(s *seedSpecies) { s.rarity = &status }
}

// WithSource sets the source column.
func WithSource(src domain.Source) SpeciesOption {
	return func(s *seedSpecies) { s.Source = src }
}

// WithCacheExpiresAt sets cache_expires_at.
func WithCacheExpiresAt(at time.Time) SpeciesOption {
	return func(s *seedSpecies) { s.cacheExpiresAt = &at }
}

// SeedSpecies inserts a species row with a unique id and scientific name.
// Region stays NULL unless WithRegion is given.
func SeedSpecies(t *testing.T, pool *pgxpool.Pool, name string, opts ...SpeciesOption) domain.Species {
	t.Helper()

	s := seedSpecies{Species: domain.Species{
		ID:             UniqueID("sp"),
		Name:           name,
		ScientificName: UniqueID(name),
		Category:       domain.CategoryOther,
		ImageURL:       "https://img.test/" + name + ".jpg",
		Source:         domain.SourceCatalog,
	}}
	for _, o := range opts {
		o(&s)
	}

	var region *string
	if s.Region != "" {
		region = &s.Region
	}
	var latMin, latMax, lonMin, lonMax *float64
	if s.Range != nil {
		latMin, latMax, lonMin, lonMax = &s.Range.LatMin, &s.Range.LatMax, &s.Range.LonMin, &s.Range.LonMax
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO species (id, name, scientific_name, category, region, primary_image_url,
		                      conservation_status, lat_min, lat_max, lon_min, lon_max, source, cache_expires_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		s.ID, s.Name, s.ScientificName, string(s.Category), region, s.ImageURL,
		s.rarity, latMin, latMax, lonMin, lonMax, string(s.Source), s.cacheExpiresAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSpecies insert: %v", err)
	}

	if s.Region == "" {
		s.Region = domain.UnknownRegion
	}
	s.Rarity = domain.ParseRarity(deref(s.rarity))
	return s.Species
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
