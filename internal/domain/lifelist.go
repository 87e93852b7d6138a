package domain

import (
	"time"

	"github.com/google/uuid"
)

// LifelistEntry is a single sighting recorded by a user.
type LifelistEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	SpeciesID   string
	SpeciesName string
	DateSpotted time.Time
	Location    *string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
