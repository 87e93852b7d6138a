package inaturalist

import (
	"strconv"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// RangeToleranceDeg is the half-width in degrees of the synthetic range box
// built around a single observation. Coarse, kept for compatibility with
// records already stored by earlier clients.
const RangeToleranceDeg = 1.0

const (
	commonThreshold   = 100_000
	uncommonThreshold = 10_000
)

var iconicCategories = map[string]domain.Category{
	"Mammalia":       domain.CategoryMammal,
	"Aves":           domain.CategoryBird,
	"Reptilia":       domain.CategoryReptile,
	"Amphibia":       domain.CategoryAmphibian,
	"Insecta":        domain.CategoryInsect,
	"Actinopterygii": domain.CategoryFish,
	"Arachnida":      domain.CategoryArachnid,
	"Plantae":        domain.CategoryPlant,
	"Fungi":          domain.CategoryFungus,
	"Crustacea":      domain.CategoryCrustacean,
	"Mollusca":       domain.CategoryOther,
}

// MapIconicTaxon maps an iconic taxon name to a category. Anything not in
// the table, including "", is CategoryOther.
func MapIconicTaxon(name string) domain.Category {
	if c, ok := iconicCategories[name]; ok {
		return c
	}
	return domain.CategoryOther
}

// DetermineRarity derives rarity from the taxon's total observation count.
// qualityGrade is accepted for parity with the observation payload but does
// not influence the result.
func DetermineRarity(qualityGrade string, observationsCount int64) domain.Rarity {
	_ = qualityGrade
	switch {
	case observationsCount > commonThreshold:
		return domain.RarityCommon
	case observationsCount > uncommonThreshold:
		return domain.RarityUncommon
	default:
		return domain.RarityRare
	}
}

// mediumPhotoURL swaps the first "square" size token for "medium".
func mediumPhotoURL(u string) string {
	return strings.Replace(u, "square", "medium", 1)
}

// mapObservation converts one observation into a species record.
// Observations without a taxon carry nothing to show and are reported as !ok.
func mapObservation(obs apiObservation) (domain.Species, bool) {
	t := obs.Taxon
	if t == nil || t.Name == "" {
		return domain.Species{}, false
	}

	s := domain.Species{
		ID:             "inaturalist-" + strconv.FormatInt(t.ID, 10),
		Name:           t.PreferredCommonName,
		ScientificName: t.Name,
		Category:       MapIconicTaxon(t.IconicTaxonName),
		Region:         obs.PlaceGuess,
		Rarity:         DetermineRarity(obs.QualityGrade, t.ObservationsCount),
		Source:         domain.SourceINaturalist,
	}
	if s.Name == "" {
		s.Name = t.Name
	}
	if s.Region == "" {
		s.Region = domain.UnknownRegion
	}

	if len(obs.Photos) > 0 {
		s.ImageURL = mediumPhotoURL(obs.Photos[0].URL)
		s.ImageURLs = make([]string, 0, len(obs.Photos))
		for _, p := range obs.Photos {
			s.ImageURLs = append(s.ImageURLs, mediumPhotoURL(p.URL))
		}
	}

	if obs.Location != nil {
		s.Range = domain.BoxAround(domain.Point{Latitude: obs.Location.Lat, Longitude: obs.Location.Lng}, RangeToleranceDeg)
	}

	id := t.ID
	s.INaturalistID = &id
	count := t.ObservationsCount
	s.ObservationCount = &count
	if t.WikipediaURL != "" {
		v := t.WikipediaURL
		s.WikipediaURL = &v
	}
	if t.WikipediaSummary != "" {
		v := t.WikipediaSummary
		s.Description = &v
	}

	return s, true
}
