package explore

import (
	"slices"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/geo"
	"github.com/heartmarshall/wildlife-backend/internal/service/resolver"
)

// Mode is how a species list was selected.
type Mode string

const (
	ModeNearby Mode = "nearby"
	ModeRegion Mode = "region"
)

// EmptyReason explains an empty species list.
type EmptyReason string

const (
	EmptyNone                EmptyReason = ""
	EmptyLocationUnavailable EmptyReason = "location_unavailable"
	EmptyNoMatches           EmptyReason = "no_matches"
)

// ExploreInput selects a species list. With UseLocation and a Point the list
// is built around the point; with UseLocation and no Point the location is
// treated as unavailable and Region is browsed instead.
type ExploreInput struct {
	Point         *domain.Point
	UseLocation   bool
	Region        string
	MaxDistanceKm float64
	SearchText    string
	Categories    []domain.Category
	// StrictRange drops catalog species whose range box is farther than
	// MaxDistanceKm from Point. Ignored outside near-me mode.
	StrictRange bool
}

// Validate checks fields the resolver does not know about.
func (in ExploreInput) Validate() error {
	if in.Region != "" && in.Region != resolver.AllRegions &&
		in.Region != domain.UnknownRegion && !slices.Contains(geo.Regions(), in.Region) {
		return domain.NewValidationError("region", "unknown region")
	}
	return nil
}

func (in ExploreInput) query() resolver.Query {
	return resolver.Query{
		MaxDistanceKm: in.MaxDistanceKm,
		SearchText:    in.SearchText,
		Categories:    in.Categories,
	}
}

// ExploreResult is a species list with the context needed to render it.
type ExploreResult struct {
	Species             []domain.Species
	Status              resolver.Status
	DegradedSources     []string
	Mode                Mode
	Region              string
	DetectedRegion      string
	LocationLabel       string
	LocationUnavailable bool
	EmptyReason         EmptyReason
	Cached              bool
}

// SpeciesDetail is one species with an optional reference excerpt.
type SpeciesDetail struct {
	Species    domain.Species
	Excerpt    string
	ExcerptURL string
}
