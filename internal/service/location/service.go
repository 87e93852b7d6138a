// Package location turns coordinates and client addresses into the
// human-readable place and macro-region shown next to species lists.
package location

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/geo"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

// Placeholder is the label used whenever a place cannot be named.
const Placeholder = "your location"

type reverseGeocoder interface {
	Reverse(ctx context.Context, p domain.Point) (*provider.Address, error)
}

type ipLocator interface {
	Lookup(ip string) (*provider.IPLocation, error)
}

type labelCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, label string)
}

// Located is a position inferred from a client address.
type Located struct {
	Point   domain.Point
	City    string
	Country string
	Region  string
}

// Service names places. The geocoder and locator are optional.
type Service struct {
	log      *slog.Logger
	geocoder reverseGeocoder
	locator  ipLocator
	cache    labelCache
}

// NewService creates a location service. geocoder, locator and cache may
// be nil.
func NewService(logger *slog.Logger, geocoder reverseGeocoder, locator ipLocator, cache labelCache) *Service {
	return &Service{
		log:      logger.With("service", "location"),
		geocoder: geocoder,
		locator:  locator,
		cache:    cache,
	}
}

// CityName returns a display label such as "San Francisco, California" for
// p. Every failure falls back to Placeholder.
func (s *Service) CityName(ctx context.Context, p domain.Point) string {
	if s.geocoder == nil || len(p.Validate()) > 0 {
		return Placeholder
	}

	key := labelKey(p)
	if s.cache != nil {
		if label, ok := s.cache.Get(ctx, key); ok {
			return label
		}
	}

	addr, err := s.geocoder.Reverse(ctx, p)
	if err != nil {
		s.log.WarnContext(ctx, "reverse geocoding failed, using placeholder",
			slog.Float64("lat", p.Latitude),
			slog.Float64("lon", p.Longitude),
			slog.String("error", err.Error()))
		return Placeholder
	}

	label := Label(addr)
	if s.cache != nil {
		s.cache.Set(ctx, key, label)
	}
	return label
}

// Locate infers a position from a client IP address.
func (s *Service) Locate(_ context.Context, ip string) (*Located, error) {
	if s.locator == nil {
		return nil, fmt.Errorf("ip location disabled: %w", domain.ErrNotFound)
	}

	loc, err := s.locator.Lookup(ip)
	if err != nil {
		return nil, err
	}

	return &Located{
		Point:   loc.Point,
		City:    loc.City,
		Country: loc.Country,
		Region:  geo.ClassifyRegion(loc.Point),
	}, nil
}

// DetectRegion names the macro-region containing p.
func (s *Service) DetectRegion(p domain.Point) string {
	return geo.ClassifyRegion(p)
}

// Label builds a display label from an address: the most specific locality
// with its state, else with the upper-cased country code, else the state
// alone, else Placeholder.
func Label(addr *provider.Address) string {
	if addr == nil {
		return Placeholder
	}

	city := firstNonEmpty(addr.City, addr.Town, addr.Village, addr.County)
	state := firstNonEmpty(addr.State, addr.Region)
	country := strings.ToUpper(strings.TrimSpace(addr.CountryCode))

	switch {
	case city != "" && state != "":
		return city + ", " + state
	case city != "" && country != "":
		return city + ", " + country
	case state != "":
		return state
	default:
		return Placeholder
	}
}

func labelKey(p domain.Point) string {
	return fmt.Sprintf("%.3f:%.3f", p.Latitude, p.Longitude)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
