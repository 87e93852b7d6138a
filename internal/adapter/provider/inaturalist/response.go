package inaturalist

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// apiResponse is the envelope of GET /v1/observations.
type apiResponse struct {
	TotalResults int              `json:"total_results"`
	Results      []apiObservation `json:"results"`
}

type apiObservation struct {
	ID           int64      `json:"id"`
	QualityGrade string     `json:"quality_grade"`
	PlaceGuess   string     `json:"place_guess"`
	Location     *apiLatLon `json:"location"`
	Taxon        *apiTaxon  `json:"taxon"`
	Photos       []apiPhoto `json:"photos"`
}

type apiTaxon struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	PreferredCommonName string `json:"preferred_common_name"`
	IconicTaxonName     string `json:"iconic_taxon_name"`
	WikipediaURL        string `json:"wikipedia_url"`
	WikipediaSummary    string `json:"wikipedia_summary"`
	ObservationsCount   int64  `json:"observations_count"`
}

type apiPhoto struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// apiLatLon accepts both encodings the API has used for an observation
// position: the string "lat,lng" and the pair [lat, lng].
type apiLatLon struct {
	Lat float64
	Lng float64
}

func (l *apiLatLon) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err == nil {
		if len(pair) != 2 {
			return fmt.Errorf("location: want 2 coordinates, got %d", len(pair))
		}
		l.Lat, l.Lng = pair[0], pair[1]
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("location: %w", err)
	}
	latStr, lngStr, ok := strings.Cut(s, ",")
	if !ok {
		return fmt.Errorf("location: malformed %q", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil {
		return fmt.Errorf("location: latitude: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(lngStr), 64)
	if err != nil {
		return fmt.Errorf("location: longitude: %w", err)
	}
	l.Lat, l.Lng = lat, lng
	return nil
}
