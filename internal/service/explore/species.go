package explore

import (
	"context"
	"log/slog"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// GetSpecies returns one catalog species. When the stored description is
// empty and a Wikipedia article is linked, the article excerpt is fetched
// and used instead; fetch failures leave the description empty.
func (s *Service) GetSpecies(ctx context.Context, id string) (*SpeciesDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "required")
	}

	sp, err := s.catalog.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &SpeciesDetail{Species: *sp}

	if s.excerpts == nil || sp.WikipediaURL == nil || *sp.WikipediaURL == "" {
		return detail, nil
	}
	if sp.Description != nil && strings.TrimSpace(*sp.Description) != "" {
		return detail, nil
	}

	art, err := s.excerpts.FetchExcerpt(ctx, *sp.WikipediaURL)
	if err != nil {
		s.log.WarnContext(ctx, "excerpt unavailable",
			slog.String("species_id", sp.ID),
			slog.String("error", err.Error()))
		return detail, nil
	}

	detail.Excerpt = art.Excerpt
	detail.ExcerptURL = art.URL
	if art.Excerpt != "" {
		excerpt := art.Excerpt
		detail.Species.Description = &excerpt
	}
	return detail, nil
}
