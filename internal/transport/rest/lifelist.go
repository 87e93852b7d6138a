package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/service/lifelist"
	"github.com/heartmarshall/wildlife-backend/internal/transport/dataloader"
)

type lifelistService interface {
	AddEntry(ctx context.Context, input lifelist.AddEntryInput) (*domain.LifelistEntry, error)
	ListEntries(ctx context.Context, input lifelist.ListEntriesInput) ([]domain.LifelistEntry, int, error)
	GetEntry(ctx context.Context, entryID uuid.UUID) (*domain.LifelistEntry, error)
	DeleteEntry(ctx context.Context, input lifelist.DeleteEntryInput) error
}

// LifelistHandler serves the signed-in user's sightings.
type LifelistHandler struct {
	svc lifelistService
	log *slog.Logger
}

// NewLifelistHandler creates a LifelistHandler.
func NewLifelistHandler(svc lifelistService, logger *slog.Logger) *LifelistHandler {
	return &LifelistHandler{svc: svc, log: logger.With("handler", "lifelist")}
}

type addEntryRequest struct {
	SpeciesID   string     `json:"speciesId"`
	SpeciesName string     `json:"speciesName"`
	DateSpotted *time.Time `json:"dateSpotted"`
	Location    *string    `json:"location"`
	Notes       *string    `json:"notes"`
}

type entryResponse struct {
	ID          string          `json:"id"`
	SpeciesID   string          `json:"speciesId"`
	SpeciesName string          `json:"speciesName"`
	DateSpotted time.Time       `json:"dateSpotted"`
	Location    *string         `json:"location,omitempty"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	Species     *domain.Species `json:"species,omitempty"`
}

type entryListResponse struct {
	Entries []entryResponse `json:"entries"`
	Total   int             `json:"total"`
}

// List handles GET /v1/lifelist.
func (h *LifelistHandler) List(w http.ResponseWriter, r *http.Request) {
	var in lifelist.ListEntriesInput
	var errs []domain.FieldError
	if raw := r.URL.Query().Get("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "limit", Message: "must be an integer"})
		}
		in.Limit = v
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "offset", Message: "must be an integer"})
		}
		in.Offset = v
	}
	if len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	entries, total, err := h.svc.ListEntries(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entryListResponse{
		Entries: h.withSpecies(r.Context(), entries),
		Total:   total,
	})
}

// Get handles GET /v1/lifelist/{id}.
func (h *LifelistHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	entry, err := h.svc.GetEntry(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, h.withSpecies(r.Context(), []domain.LifelistEntry{*entry})[0])
}

// Add handles POST /v1/lifelist.
func (h *LifelistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addEntryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	entry, err := h.svc.AddEntry(r.Context(), lifelist.AddEntryInput{
		SpeciesID:   req.SpeciesID,
		SpeciesName: req.SpeciesName,
		DateSpotted: req.DateSpotted,
		Location:    req.Location,
		Notes:       req.Notes,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toEntryResponse(*entry))
}

// Delete handles DELETE /v1/lifelist/{id}.
func (h *LifelistHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be a UUID"))
		return
	}

	if err := h.svc.DeleteEntry(r.Context(), lifelist.DeleteEntryInput{EntryID: id}); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// withSpecies embeds the catalog record for each entry through the request's
// loaders. Species the catalog no longer holds are left out.
func (h *LifelistHandler) withSpecies(ctx context.Context, entries []domain.LifelistEntry) []entryResponse {
	out := make([]entryResponse, len(entries))
	for i, e := range entries {
		out[i] = toEntryResponse(e)
	}

	loaders := dataloader.FromContext(ctx)
	if loaders == nil || len(entries) == 0 {
		return out
	}

	keys := make([]string, len(entries))
	for i, e := range entries {
		keys[i] = e.SpeciesID
	}
	species, errs := loaders.SpeciesByID.LoadMany(ctx, keys)()
	for i := range out {
		if i < len(errs) && errs[i] != nil {
			h.log.WarnContext(ctx, "species lookup failed",
				slog.String("species_id", keys[i]),
				slog.String("error", errs[i].Error()))
			continue
		}
		out[i].Species = species[i]
	}
	return out
}

func toEntryResponse(e domain.LifelistEntry) entryResponse {
	return entryResponse{
		ID:          e.ID.String(),
		SpeciesID:   e.SpeciesID,
		SpeciesName: e.SpeciesName,
		DateSpotted: e.DateSpotted,
		Location:    e.Location,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}
