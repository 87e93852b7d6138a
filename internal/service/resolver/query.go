package resolver

import (
	"math"
	"unicode/utf8"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

const maxSearchTextLen = 200

// Query describes one species resolution.
type Query struct {
	// Point enables the live observation lookup. Nil means browse mode.
	Point *domain.Point
	// MaxDistanceKm is the live search radius. Zero selects the default.
	MaxDistanceKm float64
	SearchText    string
	Categories    []domain.Category
}

// Validate checks the query before any I/O happens.
func (q Query) Validate() error {
	var errs []domain.FieldError

	if q.Point != nil {
		errs = append(errs, q.Point.Validate()...)
	}
	if math.IsNaN(q.MaxDistanceKm) || math.IsInf(q.MaxDistanceKm, 0) {
		errs = append(errs, domain.FieldError{Field: "max_distance_km", Message: "must be a finite number"})
	} else if q.MaxDistanceKm < 0 {
		errs = append(errs, domain.FieldError{Field: "max_distance_km", Message: "must not be negative"})
	}
	if utf8.RuneCountInString(q.SearchText) > maxSearchTextLen {
		errs = append(errs, domain.FieldError{Field: "search_text", Message: "too long"})
	}
	for _, c := range q.Categories {
		if !c.IsValid() {
			errs = append(errs, domain.FieldError{Field: "categories", Message: "unknown category " + string(c)})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
