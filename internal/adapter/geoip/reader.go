// Package geoip resolves client IP addresses to approximate coordinates
// using a MaxMind GeoLite2 City database.
package geoip

import (
	"fmt"
	"log/slog"
	"net"

	"github.com/oschwald/geoip2-golang"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
)

// Reader looks up IP addresses. It is safe for concurrent use.
type Reader struct {
	db  *geoip2.Reader
	log *slog.Logger
}

// Open loads the database at path.
func Open(path string, logger *slog.Logger) (*Reader, error) {
	db, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open geoip db %s: %w", path, err)
	}
	return &Reader{db: db, log: logger.With("adapter", "geoip")}, nil
}

// Lookup returns the location of ip. Unparseable, private and unknown
// addresses yield domain.ErrNotFound.
func (r *Reader) Lookup(ip string) (*provider.IPLocation, error) {
	parsed := net.ParseIP(ip)
	if parsed == nil || parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() {
		return nil, fmt.Errorf("geoip %q: %w", ip, domain.ErrNotFound)
	}

	rec, err := r.db.City(parsed)
	if err != nil {
		return nil, fmt.Errorf("geoip lookup: %w", err)
	}
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 {
		return nil, fmt.Errorf("geoip %q: %w", ip, domain.ErrNotFound)
	}

	return &provider.IPLocation{
		Point:   domain.Point{Latitude: rec.Location.Latitude, Longitude: rec.Location.Longitude},
		City:    rec.City.Names["en"],
		Country: rec.Country.IsoCode,
	}, nil
}

// Close releases the database.
func (r *Reader) Close() error {
	return r.db.Close()
}
