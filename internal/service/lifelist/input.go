package lifelist

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// AddEntryInput holds the parameters for recording a sighting.
type AddEntryInput struct {
	SpeciesID   string
	SpeciesName string
	// DateSpotted defaults to now.
	DateSpotted *time.Time
	Location    *string
	Notes       *string
}

// Validate checks all fields and collects all errors.
func (i AddEntryInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(i.SpeciesID) == "" {
		errs = append(errs, domain.FieldError{Field: "species_id", Message: "required"})
	}
	name := strings.TrimSpace(i.SpeciesName)
	if name == "" {
		errs = append(errs, domain.FieldError{Field: "species_name", Message: "required"})
	}
	if utf8.RuneCountInString(name) > 200 {
		errs = append(errs, domain.FieldError{Field: "species_name", Message: "max 200 characters"})
	}
	if i.Location != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Location)) > 200 {
		errs = append(errs, domain.FieldError{Field: "location", Message: "max 200 characters"})
	}
	if i.Notes != nil && utf8.RuneCountInString(strings.TrimSpace(*i.Notes)) > 2000 {
		errs = append(errs, domain.FieldError{Field: "notes", Message: "max 2000 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListEntriesInput holds the parameters for listing sightings.
type ListEntriesInput struct {
	Limit  int
	Offset int
}

// Validate checks all fields and collects all errors.
func (i ListEntriesInput) Validate() error {
	var errs []domain.FieldError
	if i.Limit < 0 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "must be non-negative"})
	}
	if i.Limit > 200 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "max 200"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be non-negative"})
	}
	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// DeleteEntryInput holds the parameters for deleting a sighting.
type DeleteEntryInput struct {
	EntryID uuid.UUID
}

// Validate checks all fields and collects all errors.
func (i DeleteEntryInput) Validate() error {
	if i.EntryID == uuid.Nil {
		return domain.NewValidationError("entry_id", "required")
	}
	return nil
}
