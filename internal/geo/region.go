package geo

import "github.com/heartmarshall/wildlife-backend/internal/domain"

// Macro-region names.
const (
	RegionNorthAmerica = "North America"
	RegionEurope       = "Europe"
	RegionAsia         = "Asia"
	RegionSouthAmerica = "South America"
	RegionAfrica       = "Africa"
	RegionAustralia    = "Australia"
	RegionAntarctica   = "Antarctica"
)

type region struct {
	name string
	box  domain.BoundingBox
}

// regions is evaluated in order; the first box containing a point wins.
// Several boxes overlap (Asia/Australia, Europe/Asia, Europe/Africa) so the
// order is part of the contract.
var regions = []region{
	{RegionNorthAmerica, domain.BoundingBox{LatMin: 15, LatMax: 72, LonMin: -168, LonMax: -52}},
	{RegionEurope, domain.BoundingBox{LatMin: 36, LatMax: 71, LonMin: -10, LonMax: 40}},
	{RegionAsia, domain.BoundingBox{LatMin: -10, LatMax: 55, LonMin: 40, LonMax: 180}},
	{RegionSouthAmerica, domain.BoundingBox{LatMin: -56, LatMax: 13, LonMin: -82, LonMax: -34}},
	{RegionAfrica, domain.BoundingBox{LatMin: -35, LatMax: 37, LonMin: -18, LonMax: 52}},
	{RegionAustralia, domain.BoundingBox{LatMin: -47, LatMax: -10, LonMin: 113, LonMax: 180}},
}

// ClassifyRegion returns the name of the first macro-region containing p,
// or domain.UnknownRegion.
func ClassifyRegion(p domain.Point) string {
	for _, r := range regions {
		if r.box.Contains(p) {
			return r.name
		}
	}
	return domain.UnknownRegion
}

// Regions returns the browseable region names. Antarctica has no detection
// box but is still offered for manual browsing.
func Regions() []string {
	names := make([]string, 0, len(regions)+1)
	for _, r := range regions {
		names = append(names, r.name)
	}
	return append(names, RegionAntarctica)
}
