// Package nominatim reverse-geocodes points through the OpenStreetMap
// Nominatim API.
package nominatim

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/metrics"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

const providerName = "nominatim"

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City        string `json:"city"`
		Town        string `json:"town"`
		Village     string `json:"village"`
		County      string `json:"county"`
		State       string `json:"state"`
		Region      string `json:"region"`
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Client performs reverse lookups. Outbound requests share one limiter so
// the public usage policy holds across concurrent callers.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.GeocoderConfig, logger *slog.Logger) *Client {
	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		log:        logger.With("adapter", providerName),
	}
}

// Reverse returns the address around p at city zoom level.
func (c *Client) Reverse(ctx context.Context, p domain.Point) (*provider.Address, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, provider.WrapError(providerName, "rate limit wait", err)
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(p.Latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(p.Longitude, 'f', -1, 64))
	q.Set("zoom", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
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

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.StatusError(providerName, resp.StatusCode)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.WrapError(providerName, "decode json", err)
	}

	c.log.DebugContext(ctx, "reverse geocoded",
		slog.String("display_name", body.DisplayName),
		slog.Duration("took", time.Since(start)))

	return &provider.Address{
		City:        body.Address.City,
		Town:        body.Address.Town,
		Village:     body.Address.Village,
		County:      body.Address.County,
		State:       body.Address.State,
		Region:      body.Address.Region,
		CountryCode: body.Address.CountryCode,
	}, nil
}
