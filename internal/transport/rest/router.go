package rest

import (
	"net/http"
)

// Handlers groups every handler served by the router.
type Handlers struct {
	Health   *HealthHandler
	Species  *SpeciesHandler
	Location *LocationHandler
	Lifelist *LifelistHandler
	Metrics  http.Handler
}

// NewRouter registers all routes on a ServeMux. perRequest wraps the
// lifelist routes, which need per-request loaders.
func NewRouter(h Handlers, perRequest func(http.Handler) http.Handler) *http.ServeMux {
	if perRequest == nil {
		perRequest = func(next http.Handler) http.Handler { return next }
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	mux.HandleFunc("GET /v1/species", h.Species.List)
	mux.HandleFunc("GET /v1/species/{id}", h.Species.Get)
	mux.HandleFunc("POST /v1/species/{id}/chat", h.Species.Chat)

	mux.HandleFunc("GET /v1/regions", h.Location.Regions)
	mux.HandleFunc("GET /v1/categories", h.Location.Categories)
	mux.HandleFunc("GET /v1/location", h.Location.Locate)

	mux.Handle("GET /v1/lifelist", perRequest(http.HandlerFunc(h.Lifelist.List)))
	mux.Handle("POST /v1/lifelist", http.HandlerFunc(h.Lifelist.Add))
	mux.Handle("GET /v1/lifelist/{id}", perRequest(http.HandlerFunc(h.Lifelist.Get)))
	mux.Handle("DELETE /v1/lifelist/{id}", http.HandlerFunc(h.Lifelist.Delete))

	return mux
}
