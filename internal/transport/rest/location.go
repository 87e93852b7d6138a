package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/geo"
	"github.com/heartmarshall/wildlife-backend/internal/service/location"
	"github.com/heartmarshall/wildlife-backend/pkg/ctxutil"
)

type locationService interface {
	CityName(ctx context.Context, p domain.Point) string
	Locate(ctx context.Context, ip string) (*location.Located, error)
	DetectRegion(p domain.Point) string
}

// LocationHandler serves place naming and the browse vocabularies.
type LocationHandler struct {
	svc locationService
	log *slog.Logger
}

// NewLocationHandler creates a LocationHandler.
func NewLocationHandler(svc locationService, logger *slog.Logger) *LocationHandler {
	return &LocationHandler{svc: svc, log: logger.With("handler", "location")}
}

type locationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Region    string  `json:"region"`
	Label     string  `json:"label"`
	Source    string  `json:"source"`
}

// Locate handles GET /v1/location. With lat and lon the point is labelled;
// without them the caller's IP address is looked up.
func (h *LocationHandler) Locate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Get("lat") == "" && q.Get("lon") == "" {
		h.locateByIP(w, r)
		return
	}

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(q.Get("lon"), 64)
	if latErr != nil || lonErr != nil {
		handleError(h.log, w, r, domain.NewValidationError("lat,lon", "must be numbers given together"))
		return
	}
	p := domain.Point{Latitude: lat, Longitude: lon}
	if errs := p.Validate(); len(errs) > 0 {
		handleError(h.log, w, r, domain.NewValidationErrors(errs))
		return
	}

	writeJSON(w, http.StatusOK, locationResponse{
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Region:    h.svc.DetectRegion(p),
		Label:     h.svc.CityName(r.Context(), p),
		Source:    "coordinates",
	})
}

func (h *LocationHandler) locateByIP(w http.ResponseWriter, r *http.Request) {
	loc, err := h.svc.Locate(r.Context(), ctxutil.ClientIPFromCtx(r.Context()))
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	label := loc.City
	if label == "" {
		label = location.Placeholder
	}
	writeJSON(w, http.StatusOK, locationResponse{
		Latitude:  loc.Point.Latitude,
		Longitude: loc.Point.Longitude,
		Region:    loc.Region,
		Label:     label,
		Source:    "ip",
	})
}

// Regions handles GET /v1/regions.
func (h *LocationHandler) Regions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"regions": geo.Regions()})
}

// Categories handles GET /v1/categories.
func (h *LocationHandler) Categories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]domain.Category{"categories": domain.AllCategories})
}
