package lifelist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/pkg/ctxutil"
)

// AddEntry records a sighting for the current user. The per-user cap is
// checked in the same transaction as the insert.
func (s *Service) AddEntry(ctx context.Context, input AddEntryInput) (*domain.LifelistEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	spotted := now
	if input.DateSpotted != nil {
		spotted = input.DateSpotted.UTC()
	}

	entry := &domain.LifelistEntry{
		ID:          uuid.New(),
		UserID:      userID,
		SpeciesID:   strings.TrimSpace(input.SpeciesID),
		SpeciesName: strings.TrimSpace(input.SpeciesName),
		DateSpotted: spotted,
		Location:    domain.TrimOrNil(input.Location),
		Notes:       domain.TrimOrNil(input.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var created *domain.LifelistEntry
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		count, err := s.entries.Count(ctx, userID)
		if err != nil {
			return fmt.Errorf("count lifelist entries: %w", err)
		}
		if count >= s.maxEntries {
			return domain.NewValidationError("lifelist", fmt.Sprintf("lifelist is full (max %d entries)", s.maxEntries))
		}

		created, err = s.entries.Create(ctx, entry)
		if err != nil {
			return fmt.Errorf("create lifelist entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "lifelist entry added",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", created.ID.String()),
		slog.String("species_id", created.SpeciesID),
	)

	return created, nil
}

// ListEntries returns the current user's sightings, most recent first, and
// the total count.
func (s *Service) ListEntries(ctx context.Context, input ListEntriesInput) ([]domain.LifelistEntry, int, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, 0, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, 0, err
	}

	limit := input.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	entries, total, err := s.entries.List(ctx, userID, limit, input.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list lifelist entries: %w", err)
	}
	return entries, total, nil
}

// GetEntry returns one sighting of the current user.
func (s *Service) GetEntry(ctx context.Context, entryID uuid.UUID) (*domain.LifelistEntry, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	entry, err := s.entries.GetByID(ctx, userID, entryID)
	if err != nil {
		return nil, fmt.Errorf("get lifelist entry: %w", err)
	}
	return entry, nil
}

// DeleteEntry deletes a sighting. Entries of other users read as not found.
func (s *Service) DeleteEntry(ctx context.Context, input DeleteEntryInput) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	if err := s.entries.Delete(ctx, userID, input.EntryID); err != nil {
		return fmt.Errorf("delete lifelist entry: %w", err)
	}

	s.log.InfoContext(ctx, "lifelist entry deleted",
		slog.String("user_id", userID.String()),
		slog.String("entry_id", input.EntryID.String()),
	)

	return nil
}
