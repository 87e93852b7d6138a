// Package explore serves the species list and species detail views on top
// of the resolver: it picks near-me or region browsing, caches healthy
// results, names the user's place and explains empty lists.
package explore

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
	"github.com/heartmarshall/wildlife-backend/internal/service/resolver"
)

type speciesResolver interface {
	Resolve(ctx context.Context, q resolver.Query) (*resolver.Result, error)
	ResolveRegionFiltered(ctx context.Context, q resolver.Query, region string) (*resolver.Result, error)
}

type listCache interface {
	Get(ctx context.Context, key string) ([]domain.Species, bool)
	Set(ctx context.Context, key string, list []domain.Species)
}

type placeNamer interface {
	CityName(ctx context.Context, p domain.Point) string
}

type catalogRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Species, error)
	UpsertLive(ctx context.Context, records []domain.Species, expiresAt time.Time) error
}

type excerptFetcher interface {
	FetchExcerpt(ctx context.Context, articleURL string) (*provider.Article, error)
}

// Deps groups the collaborators of Service. Cache, Places and Excerpts are
// optional.
type Deps struct {
	Resolver speciesResolver
	Catalog  catalogRepo
	Cache    listCache
	Places   placeNamer
	Excerpts excerptFetcher
}

// Service implements the explore and species detail operations.
type Service struct {
	log      *slog.Logger
	resolver speciesResolver
	catalog  catalogRepo
	cache    listCache
	places   placeNamer
	excerpts excerptFetcher
	cfg      config.ResolverConfig
	now      func() time.Time
}

// NewService creates an explore service.
func NewService(logger *slog.Logger, deps Deps, cfg config.ResolverConfig) *Service {
	return &Service{
		log:      logger.With("service", "explore"),
		resolver: deps.Resolver,
		catalog:  deps.Catalog,
		cache:    deps.Cache,
		places:   deps.Places,
		excerpts: deps.Excerpts,
		cfg:      cfg,
		now:      time.Now,
	}
}
