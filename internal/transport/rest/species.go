package rest

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
	"github.com/heartmarshall/wildlife-backend/internal/service/chat"
	"github.com/heartmarshall/wildlife-backend/internal/service/explore"
)

type exploreService interface {
	Explore(ctx context.Context, in explore.ExploreInput) (*explore.ExploreResult, error)
	GetSpecies(ctx context.Context, id string) (*explore.SpeciesDetail, error)
}

type chatService interface {
	Enabled() bool
	Ask(ctx context.Context, in chat.AskInput) (*chat.Message, error)
}

// SpeciesHandler serves species lists, detail pages, and species chat.
type SpeciesHandler struct {
	explore exploreService
	chat    chatService
	log     *slog.Logger
}

// NewSpeciesHandler creates a SpeciesHandler.
func NewSpeciesHandler(ex exploreService, ch chatService, logger *slog.Logger) *SpeciesHandler {
	return &SpeciesHandler{explore: ex, chat: ch, log: logger.With("handler", "species")}
}

type speciesListResponse struct {
	Species             []domain.Species `json:"species"`
	Status              string           `json:"status"`
	Degraded            []string         `json:"degraded,omitempty"`
	Mode                string           `json:"mode"`
	Region              string           `json:"region,omitempty"`
	DetectedRegion      string           `json:"detectedRegion,omitempty"`
	LocationLabel       string           `json:"locationLabel,omitempty"`
	LocationUnavailable bool             `json:"locationUnavailable"`
	EmptyReason         string           `json:"emptyReason,omitempty"`
	Cached              bool             `json:"cached"`
}

type speciesDetailResponse struct {
	Species    domain.Species `json:"species"`
	ExcerptURL string         `json:"excerptUrl,omitempty"`
	Greeting   *chatMessage   `json:"greeting,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	SpeciesName    string        `json:"speciesName"`
	ScientificName string        `json:"scientificName"`
	Messages       []chatMessage `json:"messages"`
}

type chatResponse struct {
	Message string `json:"message"`
}

// List handles GET /v1/species.
func (h *SpeciesHandler) List(w http.ResponseWriter, r *http.Request) {
	in, err := parseExploreInput(r.URL.Query())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	res, err := h.explore.Explore(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, speciesListResponse{
		Species:             res.Species,
		Status:              string(res.Status),
		Degraded:            res.DegradedSources,
		Mode:                string(res.Mode),
		Region:              res.Region,
		DetectedRegion:      res.DetectedRegion,
		LocationLabel:       res.LocationLabel,
		LocationUnavailable: res.LocationUnavailable,
		EmptyReason:         string(res.EmptyReason),
		Cached:              res.Cached,
	})
}

// Get handles GET /v1/species/{id}.
func (h *SpeciesHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.explore.GetSpecies(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	resp := speciesDetailResponse{Species: detail.Species, ExcerptURL: detail.ExcerptURL}
	if h.chat.Enabled() {
		g := chat.Greeting(detail.Species.Name)
		resp.Greeting = &chatMessage{Role: string(g.Role), Content: g.Content}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Chat handles POST /v1/species/{id}/chat. Names missing from the body are
// taken from the catalog.
func (h *SpeciesHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if !h.chat.Enabled() {
		handleError(h.log, w, r, chat.ErrChatDisabled)
		return
	}

	var req chatRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if strings.TrimSpace(req.SpeciesName) == "" {
		detail, err := h.explore.GetSpecies(r.Context(), r.PathValue("id"))
		if err != nil {
			handleError(h.log, w, r, err)
			return
		}
		req.SpeciesName = detail.Species.Name
		req.ScientificName = detail.Species.ScientificName
	}

	in := chat.AskInput{
		SpeciesName:    req.SpeciesName,
		ScientificName: req.ScientificName,
		Messages:       make([]chat.Message, 0, len(req.Messages)),
	}
	for _, m := range req.Messages {
		in.Messages = append(in.Messages, chat.Message{Role: provider.ChatRole(m.Role), Content: m.Content})
	}

	reply, err := h.chat.Ask(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Message: reply.Content})
}

// parseExploreInput reads the species list query string. Coordinates must
// come as a lat/lon pair; use_location defaults to true when they do.
func parseExploreInput(q url.Values) (explore.ExploreInput, error) {
	var (
		in   explore.ExploreInput
		errs []domain.FieldError
	)

	latRaw, lonRaw := q.Get("lat"), q.Get("lon")
	switch {
	case latRaw == "" && lonRaw == "":
	case latRaw == "" || lonRaw == "":
		errs = append(errs, domain.FieldError{Field: "lat,lon", Message: "must be given together"})
	default:
		lat, latErr := strconv.ParseFloat(latRaw, 64)
		lon, lonErr := strconv.ParseFloat(lonRaw, 64)
		if latErr != nil {
			errs = append(errs, domain.FieldError{Field: "lat", Message: "must be a number"})
		}
		if lonErr != nil {
			errs = append(errs, domain.FieldError{Field: "lon", Message: "must be a number"})
		}
		if latErr == nil && lonErr == nil {
			in.Point = &domain.Point{Latitude: lat, Longitude: lon}
		}
	}

	in.UseLocation = in.Point != nil
	if raw := q.Get("use_location"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "use_location", Message: "must be a boolean"})
		}
		in.UseLocation = v
	}

	if raw := q.Get("radius"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "radius", Message: "must be a number"})
		}
		in.MaxDistanceKm = v
	}

	if raw := q.Get("strict"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			errs = append(errs, domain.FieldError{Field: "strict", Message: "must be a boolean"})
		}
		in.StrictRange = v
	}

	in.SearchText = q.Get("q")
	in.Region = strings.TrimSpace(q.Get("region"))

	for _, raw := range q["category"] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				in.Categories = append(in.Categories, domain.Category(strings.ToLower(part)))
			}
		}
	}

	if len(errs) > 0 {
		return in, domain.NewValidationErrors(errs)
	}
	return in, nil
}
