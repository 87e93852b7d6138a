// Package geo holds the pure coordinate math used to match species ranges
// against a user position and to name the macro-region of a point.
package geo

import (
	"math"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// EarthRadiusKm is the mean radius of the spherical Earth model.
const EarthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between a and b using the
// haversine formula. NaN inputs yield NaN.
func DistanceKm(a, b domain.Point) float64 {
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// IsWithinRange reports whether p lies inside box or within maxDistanceKm of
// its nearest edge. A nil box is an unknown range and never matches.
func IsWithinRange(p domain.Point, box *domain.BoundingBox, maxDistanceKm float64) bool {
	if box == nil {
		return false
	}
	if box.Contains(p) {
		return true
	}

	nearest := domain.Point{
		Latitude:  clamp(p.Latitude, box.LatMin, box.LatMax),
		Longitude: clamp(p.Longitude, box.LonMin, box.LonMax),
	}
	return DistanceKm(p, nearest) <= maxDistanceKm
}

// FilterByRange keeps the records whose range is within maxDistanceKm of p.
// Input order is preserved.
func FilterByRange(records []domain.Species, p domain.Point, maxDistanceKm float64) []domain.Species {
	out := make([]domain.Species, 0, len(records))
	for _, r := range records {
		if IsWithinRange(p, r.Range, maxDistanceKm) {
			out = append(out, r)
		}
	}
	return out
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
