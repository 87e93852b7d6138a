// Package inaturalist adapts the iNaturalist observation search API into
// species records.
package inaturalist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/metrics"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

const providerName = "inaturalist"

// Client fetches research-grade observations near a point.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.INaturalistConfig, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger.With("adapter", providerName),
	}
}

// FetchNearby returns up to perPage species observed within radiusKm of p,
// most voted first. The call is not retried; any failure is a *provider.Error.
func (c *Client) FetchNearby(ctx context.Context, p domain.Point, radiusKm float64, perPage int) ([]domain.Species, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("lng", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("radius", strconv.FormatFloat(radiusKm, 'f', -1, 64))
	q.Set("per_page", strconv.Itoa(perPage))
	q.Set("quality_grade", "research")
	q.Set("photos", "true")
	q.Set("order", "desc")
	q.Set("order_by", "votes")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/observations?"+q.Encode(), nil)
	if err != nil {
		return nil, provider.WrapError(providerName, "create request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	metrics.ProviderRequestsTotal.WithLabelValues(providerName).Inc()
	start := time.Now()
	defer func() {
		metrics.ProviderDurationMs.WithLabelValues(providerName).Observe(float64(time.Since(start).Milliseconds()))
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.WrapError(providerName, "do request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.StatusError(providerName, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.WrapError(providerName, "decode json", err)
	}

	species := make([]domain.Species, 0, len(body.Results))
	skipped := 0
	for _, obs := range body.Results {
		s, ok := mapObservation(obs)
		if !ok {
			skipped++
			continue
		}
		species = append(species, s)
	}

	c.log.DebugContext(ctx, "inaturalist response",
		slog.Int("observations", len(body.Results)),
		slog.Int("species", len(species)),
		slog.Int("skipped", skipped),
		slog.Duration("took", time.Since(start)),
	)

	return species, nil
}
