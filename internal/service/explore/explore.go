package explore

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/geo"
	"github.com/heartmarshall/wildlife-backend/internal/service/location"
	"github.com/heartmarshall/wildlife-backend/internal/service/resolver"
)

const defaultLabelTimeout = 1500 * time.Millisecond

// Explore builds the species list for in. Only validation errors and caller
// cancellation fail it; source outages show up as a degraded status.
func (s *Service) Explore(ctx context.Context, in ExploreInput) (*ExploreResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	q := in.query()
	out := &ExploreResult{Mode: ModeRegion, Region: in.Region}

	switch {
	case in.UseLocation && in.Point != nil:
		out.Mode = ModeNearby
		out.Region = ""
		q.Point = in.Point
	case in.UseLocation:
		out.LocationUnavailable = true
	}

	if err := q.Validate(); err != nil {
		return nil, err
	}
	if out.Mode == ModeNearby {
		out.DetectedRegion = geo.ClassifyRegion(*q.Point)
	}
	if out.Region == "" && out.Mode == ModeRegion {
		out.Region = resolver.AllRegions
	}

	var waitLabel func() string
	if out.Mode == ModeNearby && s.places != nil {
		labelCtx, cancel := context.WithTimeout(ctx, s.labelTimeout())
		defer cancel()
		waitLabel = s.lookupLabel(labelCtx, *q.Point)
	}

	res, err := s.list(ctx, q, out, in.StrictRange)
	if err != nil {
		return nil, err
	}

	out.Species = res.Species
	out.Status = res.Status
	if waitLabel != nil {
		out.LocationLabel = waitLabel()
	}
	for _, r := range res.Reasons {
		out.DegradedSources = append(out.DegradedSources, r.Source)
	}

	if len(out.Species) == 0 {
		out.EmptyReason = EmptyNoMatches
		if out.LocationUnavailable {
			out.EmptyReason = EmptyLocationUnavailable
		}
	}

	return out, nil
}

// lookupLabel names p in the background. The returned func yields the name,
// or the placeholder once ctx is done, even if the namer ignores ctx.
func (s *Service) lookupLabel(ctx context.Context, p domain.Point) func() string {
	labels := make(chan string, 1)
	go func() { labels <- s.places.CityName(ctx, p) }()

	return func() string {
		select {
		case label := <-labels:
			return label
		default:
		}
		select {
		case label := <-labels:
			return label
		case <-ctx.Done():
			s.log.DebugContext(ctx, "location label lookup timed out, using placeholder",
				slog.Float64("lat", p.Latitude),
				slog.Float64("lon", p.Longitude))
			return location.Placeholder
		}
	}
}

func (s *Service) labelTimeout() time.Duration {
	if s.cfg.LabelTimeout > 0 {
		return s.cfg.LabelTimeout
	}
	return defaultLabelTimeout
}

// list serves from the cache when possible and otherwise resolves, caching
// and persisting only healthy results.
func (s *Service) list(ctx context.Context, q resolver.Query, out *ExploreResult, strict bool) (*resolver.Result, error) {
	key := listKey(out.Mode, q, out.Region, strict)

	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			out.Cached = true
			return &resolver.Result{Species: cached, Status: resolver.StatusOK}, nil
		}
	}

	var (
		res *resolver.Result
		err error
	)
	if out.Mode == ModeNearby {
		res, err = s.resolver.Resolve(ctx, q)
	} else {
		res, err = s.resolver.ResolveRegionFiltered(ctx, q, out.Region)
	}
	if err != nil {
		return nil, err
	}

	if out.Mode == ModeNearby && strict {
		res.Species = strictRange(res.Species, *q.Point, s.distance(q))
	}

	if res.Degraded() {
		return res, nil
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, res.Species)
	}
	if out.Mode == ModeNearby && s.cfg.PersistLive {
		s.persistLive(ctx, res.Species)
	}
	return res, nil
}

func (s *Service) distance(q resolver.Query) float64 {
	if q.MaxDistanceKm > 0 {
		return q.MaxDistanceKm
	}
	return s.cfg.DefaultDistanceKm
}

func (s *Service) persistLive(ctx context.Context, species []domain.Species) {
	var live []domain.Species
	for _, sp := range species {
		if sp.Source == domain.SourceINaturalist {
			live = append(live, sp)
		}
	}
	if len(live) == 0 {
		return
	}

	expires := s.now().Add(s.cfg.LiveRetention)
	if err := s.catalog.UpsertLive(ctx, live, expires); err != nil {
		s.log.WarnContext(ctx, "failed to persist live species",
			slog.Int("count", len(live)),
			slog.String("error", err.Error()))
	}
}

// strictRange keeps live observations, which were already found inside the
// radius, and catalog species whose range reaches the point.
func strictRange(species []domain.Species, p domain.Point, maxKm float64) []domain.Species {
	out := make([]domain.Species, 0, len(species))
	for _, sp := range species {
		if sp.Source == domain.SourceINaturalist || geo.IsWithinRange(p, sp.Range, maxKm) {
			out = append(out, sp)
		}
	}
	return out
}
