package domain

import "math"

// UnknownRegion is the region label used when no region is known.
const UnknownRegion = "Unknown"

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the point is a finite coordinate within range.
func (p Point) Validate() []FieldError {
	var errs []FieldError
	if math.IsNaN(p.Latitude) || p.Latitude < -90 || p.Latitude > 90 {
		errs = append(errs, FieldError{Field: "latitude", Message: "must be between -90 and 90"})
	}
	if math.IsNaN(p.Longitude) || p.Longitude < -180 || p.Longitude > 180 {
		errs = append(errs, FieldError{Field: "longitude", Message: "must be between -180 and 180"})
	}
	return errs
}

// BoundingBox approximates the known range of a species.
type BoundingBox struct {
	LatMin float64 `json:"latMin"`
	LatMax float64 `json:"latMax"`
	LonMin float64 `json:"lonMin"`
	LonMax float64 `json:"lonMax"`
}

// Contains reports whether p lies inside the box, edges included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Latitude >= b.LatMin && p.Latitude <= b.LatMax &&
		p.Longitude >= b.LonMin && p.Longitude <= b.LonMax
}

// BoxAround returns a box extending delta degrees from p on every side.
func BoxAround(p Point, delta float64) *BoundingBox {
	return &BoundingBox{
		LatMin: p.Latitude - delta,
		LatMax: p.Latitude + delta,
		LonMin: p.Longitude - delta,
		LonMax: p.Longitude + delta,
	}
}

// Species is a single species record as seen by clients. ScientificName is
// the identity used to merge records coming from different sources.
type Species struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	ScientificName   string       `json:"scientificName"`
	Category         Category     `json:"category"`
	Region           string       `json:"region"`
	ImageURL         string       `json:"imageUrl"`
	ImageURLs        []string     `json:"imageUrls,omitempty"`
	Rarity           Rarity       `json:"rarity"`
	Range            *BoundingBox `json:"coordinates,omitempty"`
	INaturalistID    *int64       `json:"inaturalistId,omitempty"`
	WikipediaURL     *string      `json:"wikipediaUrl,omitempty"`
	Description      *string      `json:"description,omitempty"`
	ObservationCount *int64       `json:"observationCount,omitempty"`
	Source           Source       `json:"source"`
}
