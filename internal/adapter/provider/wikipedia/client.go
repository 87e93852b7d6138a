// Package wikipedia fetches species articles and reduces them to a short
// plain-text excerpt with go-readability.
package wikipedia

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/metrics"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

const (
	providerName = "wikipedia"
	maxBodySize  = 5 * 1024 * 1024
)

// Client fetches excerpts from an allowlisted host.
type Client struct {
	allowedHost string
	maxExcerpt  int
	userAgent   string
	httpClient  *http.Client
	log         *slog.Logger
}

// NewClient creates a Client from configuration.
func NewClient(cfg config.WikipediaConfig, logger *slog.Logger) *Client {
	return &Client{
		allowedHost: strings.ToLower(cfg.AllowedHost),
		maxExcerpt:  cfg.MaxExcerpt,
		userAgent:   cfg.UserAgent,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		log:         logger.With("adapter", providerName),
	}
}

// FetchExcerpt downloads articleURL and returns its title and the leading
// text, cut at a word boundary to at most the configured length.
func (c *Client) FetchExcerpt(ctx context.Context, articleURL string) (*provider.Article, error) {
	u, err := c.checkURL(articleURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, provider.WrapError(providerName, "create request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

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

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.WrapError(providerName, "read body", err)
	}
	if len(body) > maxBodySize {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.WrapError(providerName, "read body", fmt.Errorf("body exceeds %d bytes", maxBodySize))
	}

	article, err := readability.FromReader(bytes.NewReader(body), u)
	if err != nil {
		metrics.ProviderFailTotal.WithLabelValues(providerName).Inc()
		return nil, provider.WrapError(providerName, "extract article", err)
	}

	excerpt := Truncate(strings.Join(strings.Fields(article.TextContent), " "), c.maxExcerpt)

	c.log.DebugContext(ctx, "article extracted",
		slog.String("url", u.String()),
		slog.Int("text_len", len(article.TextContent)),
		slog.Duration("took", time.Since(start)))

	return &provider.Article{
		Title:   strings.TrimSpace(article.Title),
		Excerpt: excerpt,
		URL:     u.String(),
	}, nil
}

func (c *Client) checkURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, domain.NewValidationError("wikipedia_url", "malformed url")
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return nil, domain.NewValidationError("wikipedia_url", "unsupported scheme")
	}
	host := strings.ToLower(u.Hostname())
	if host != c.allowedHost && !strings.HasSuffix(host, "."+c.allowedHost) {
		return nil, domain.NewValidationError("wikipedia_url", "host not allowed")
	}
	return u, nil
}

// Truncate shortens s to at most limit runes, cutting at the last space
// and appending an ellipsis when anything was removed. A limit <= 0 keeps s.
func Truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	cut := string(runes[:limit])
	if runes[limit] != ' ' {
		if i := strings.LastIndexByte(cut, ' '); i > 0 {
			cut = cut[:i]
		}
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}
