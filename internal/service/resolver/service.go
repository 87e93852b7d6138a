// Package resolver builds the list of species to show for a location or
// a free browse: cached catalog plus live nearby observations, merged by
// scientific name and narrowed by text, category and region filters.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/metrics"
)

// Service resolves species lists from a catalog and a live bridge source.
type Service struct {
	log     *slog.Logger
	catalog Source
	bridge  Source
	cfg     config.ResolverConfig
}

// NewService creates a resolver. bridge may be nil to disable live lookups.
func NewService(logger *slog.Logger, catalog, bridge Source, cfg config.ResolverConfig) *Service {
	return &Service{
		log:     logger.With("service", "resolver"),
		catalog: catalog,
		bridge:  bridge,
		cfg:     cfg,
	}
}

// Resolve runs the pipeline for q. Catalog and bridge failures degrade the
// result instead of failing it; only an invalid query or a cancelled ctx
// is returned as an error.
func (s *Service) Resolve(ctx context.Context, q Query) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	cached, live, reasons := s.fetch(ctx, q)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	species := Merge(cached, live)
	species = FilterText(species, q.SearchText)
	species = FilterCategories(species, q.Categories)

	res := newResult(species, reasons)
	metrics.ResolutionsTotal.WithLabelValues(string(res.Status)).Inc()
	metrics.ResolvedSpeciesCount.Observe(float64(len(res.Species)))

	return res, nil
}

// ResolveRegionFiltered runs the pipeline in browse mode and keeps only
// species whose region equals region. Coordinates are rejected: radius and
// region filtering never apply to the same query.
func (s *Service) ResolveRegionFiltered(ctx context.Context, q Query, region string) (*Result, error) {
	if q.Point != nil {
		return nil, domain.NewValidationError("region", "cannot be combined with coordinates")
	}

	res, err := s.Resolve(ctx, q)
	if err != nil {
		return nil, err
	}
	res.Species = FilterRegion(res.Species, region)
	return res, nil
}

// fetch reads the catalog and the bridge concurrently. Each goroutine
// records its own failure and returns nil so that one source failing does
// not cancel the other.
func (s *Service) fetch(ctx context.Context, q Query) (cached, live []domain.Species, reasons []DegradeReason) {
	req := SourceRequest{
		Point:    q.Point,
		RadiusKm: q.MaxDistanceKm,
		Limit:    s.cfg.BridgeLimit,
	}
	if req.RadiusKm == 0 {
		req.RadiusKm = s.cfg.DefaultDistanceKm
	}

	var catalogErr, bridgeErr error
	var g errgroup.Group

	g.Go(func() error {
		cached, catalogErr = s.catalog.Fetch(ctx, req)
		return nil
	})

	if q.Point != nil && s.bridge != nil {
		g.Go(func() error {
			bctx, cancel := context.WithTimeout(ctx, s.cfg.BridgeTimeout)
			defer cancel()

			start := time.Now()
			live, bridgeErr = s.bridge.Fetch(bctx, req)
			s.log.DebugContext(ctx, "bridge fetch finished",
				slog.Int("species", len(live)),
				slog.Duration("took", time.Since(start)))
			return nil
		})
	}

	_ = g.Wait()

	if catalogErr != nil {
		cached = nil
		reasons = append(reasons, s.degrade(ctx, SourceCatalog, catalogErr, "catalog read failed, proceeding without cached species"))
	}
	if bridgeErr != nil {
		live = nil
		reasons = append(reasons, s.degrade(ctx, SourceBridge, bridgeErr, "live observations unavailable, proceeding with cached species"))
	}
	return cached, live, reasons
}

func (s *Service) degrade(ctx context.Context, source string, err error, msg string) DegradeReason {
	metrics.DegradedSourcesTotal.WithLabelValues(source).Inc()
	s.log.WarnContext(ctx, msg,
		slog.String("source", source),
		slog.String("error", err.Error()))
	return DegradeReason{Source: source, Err: err}
}
