package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret)))
	}
	if c.Database.MinConns > c.Database.MaxConns {
		errs = append(errs, fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns))
	}
	if c.Database.StatementTimeout < 0 {
		errs = append(errs, fmt.Errorf("database.statement_timeout must not be negative (got %s)", c.Database.StatementTimeout))
	}
	if err := validateBaseURL(c.INaturalist.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("inaturalist.base_url: %w", err))
	}
	if err := validateBaseURL(c.Geocoder.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("geocoder.base_url: %w", err))
	}
	if err := c.Resolver.validate(); err != nil {
		errs = append(errs, fmt.Errorf("resolver: %w", err))
	}
	if c.Geocoder.RequestsPerSec <= 0 {
		errs = append(errs, fmt.Errorf("geocoder.requests_per_sec must be > 0 (got %v)", c.Geocoder.RequestsPerSec))
	}
	if c.Lifelist.MaxEntriesPerUser <= 0 {
		errs = append(errs, fmt.Errorf("lifelist.max_entries_per_user must be > 0 (got %d)", c.Lifelist.MaxEntriesPerUser))
	}
	if c.Chat.Enabled() && c.Chat.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("chat.max_tokens must be > 0 (got %d)", c.Chat.MaxTokens))
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerMin <= 0 {
		errs = append(errs, fmt.Errorf("rate_limit.requests_per_min must be > 0 (got %d)", c.RateLimit.RequestsPerMin))
	}

	return errors.Join(errs...)
}

func (r *ResolverConfig) validate() error {
	if r.DefaultDistanceKm <= 0 {
		return fmt.Errorf("default_distance_km must be > 0 (got %v)", r.DefaultDistanceKm)
	}
	if r.BridgeLimit <= 0 || r.BridgeLimit > 200 {
		return fmt.Errorf("bridge_limit must be in 1..200 (got %d)", r.BridgeLimit)
	}
	if r.BridgeTimeout <= 0 {
		return fmt.Errorf("bridge_timeout must be > 0 (got %v)", r.BridgeTimeout)
	}
	if r.CacheTTL < 0 {
		return fmt.Errorf("cache_ttl must be >= 0 (got %v)", r.CacheTTL)
	}
	if r.PersistLive && r.LiveRetention <= 0 {
		return fmt.Errorf("live_retention must be > 0 when persist_live is set (got %v)", r.LiveRetention)
	}
	return nil
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https (got %q)", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is required")
	}
	return nil
}
