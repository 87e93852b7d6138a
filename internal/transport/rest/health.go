package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const probeTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck is one dependency reported by /health. A failing critical
// check takes the service down; a failing optional one only degrades it.
type HealthCheck struct {
	Name     string
	Critical bool
	Pinger   pinger
}

// HealthHandler serves the liveness, readiness and health endpoints.
type HealthHandler struct {
	version string
	checks  []HealthCheck
}

// NewHealthHandler creates a HealthHandler reporting the given checks.
func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{version: version, checks: checks}
}

// HealthResponse is the JSON body of /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the outcome of one check.
type CompStatus struct {
	Status   string `json:"status"`
	Critical bool   `json:"critical"`
	Latency  string `json:"latency,omitempty"`
}

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when every critical check passes and 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.run(r.Context(), true)
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health runs every check and reports each one with its latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.run(r.Context(), false)
	code := http.StatusOK
	if status == "down" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

// run probes the checks concurrently and folds them into ok, degraded or
// down.
func (h *HealthHandler) run(ctx context.Context, criticalOnly bool) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	var (
		mu         sync.Mutex
		components = make(map[string]CompStatus, len(h.checks))
		g          errgroup.Group
	)
	for _, c := range h.checks {
		if criticalOnly && !c.Critical {
			continue
		}
		g.Go(func() error {
			st := probe(ctx, c)
			mu.Lock()
			components[c.Name] = st
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	overall := "ok"
	for _, st := range components {
		switch {
		case st.Status == "ok":
		case st.Critical:
			return "down", components
		default:
			overall = "degraded"
		}
	}
	return overall, components
}

func probe(ctx context.Context, c HealthCheck) CompStatus {
	start := time.Now()
	if err := c.Pinger.Ping(ctx); err != nil {
		return CompStatus{Status: "down", Critical: c.Critical}
	}
	return CompStatus{Status: "ok", Critical: c.Critical, Latency: time.Since(start).String()}
}
