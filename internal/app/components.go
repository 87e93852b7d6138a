package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wildlife-backend/internal/adapter/cache"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/geoip"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres/lifelist"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres/species"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/provider/claude"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/provider/inaturalist"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/provider/nominatim"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/provider/wikipedia"
	"github.com/heartmarshall/wildlife-backend/internal/auth"
	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
	"github.com/heartmarshall/wildlife-backend/internal/service/chat"
	"github.com/heartmarshall/wildlife-backend/internal/service/explore"
	lifelistsvc "github.com/heartmarshall/wildlife-backend/internal/service/lifelist"
	"github.com/heartmarshall/wildlife-backend/internal/service/location"
	"github.com/heartmarshall/wildlife-backend/internal/service/resolver"
)

// Components holds the wired adapters and services shared by the server
// and the CLI commands.
type Components struct {
	Pool *pgxpool.Pool
	// Cache is the shared Redis store, nil when the memory cache is used.
	Cache    *cache.Redis
	Species  *species.Repo
	Verifier *auth.Verifier

	Resolver *resolver.Service
	Explore  *explore.Service
	Location *location.Service
	Chat     *chat.Service
	Lifelist *lifelistsvc.Service

	closers []func()
}

// Build connects to the database and wires every component. Optional
// integrations (Redis, GeoIP, Wikipedia, chat) are skipped when their
// configuration is absent. Call Close when done.
func Build(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	c.Pool = pool
	c.closers = append(c.closers, pool.Close)

	c.Species = species.New(pool)
	c.Verifier = auth.NewVerifier(cfg.Auth)

	bridge := inaturalist.NewClient(cfg.INaturalist, logger)
	c.Resolver = resolver.NewService(logger,
		resolver.NewCatalogSource(c.Species),
		resolver.NewBridgeSource(bridge),
		cfg.Resolver,
	)

	listStore, labelStore := c.cacheStores(ctx, cfg, logger)

	var locator interface {
		Lookup(ip string) (*provider.IPLocation, error)
	}
	if cfg.GeoIP.DBPath != "" {
		reader, err := geoip.Open(cfg.GeoIP.DBPath, logger)
		if err != nil {
			logger.WarnContext(ctx, "geoip disabled", slog.String("error", err.Error()))
		} else {
			locator = reader
			c.closers = append(c.closers, func() { _ = reader.Close() })
		}
	}

	c.Location = location.NewService(logger,
		nominatim.NewClient(cfg.Geocoder, logger),
		locator,
		cache.NewTyped[string](logger, labelStore, "geocode"),
	)

	var excerpts interface {
		FetchExcerpt(ctx context.Context, articleURL string) (*provider.Article, error)
	}
	if cfg.Wikipedia.Enabled {
		excerpts = wikipedia.NewClient(cfg.Wikipedia, logger)
	}

	c.Explore = explore.NewService(logger, explore.Deps{
		Resolver: c.Resolver,
		Catalog:  c.Species,
		Cache:    cache.NewTyped[[]domain.Species](logger, listStore, "species:list"),
		Places:   c.Location,
		Excerpts: excerpts,
	}, cfg.Resolver)

	var llm interface {
		Complete(ctx context.Context, system string, messages []provider.ChatMessage) (string, error)
	}
	if cfg.Chat.Enabled() {
		llm = claude.NewClient(cfg.Chat, logger)
	} else {
		logger.InfoContext(ctx, "chat disabled: no api key configured")
	}
	c.Chat = chat.NewService(logger, llm)

	c.Lifelist = lifelistsvc.NewService(logger,
		lifelist.New(pool),
		postgres.NewTxManager(pool),
		cfg.Lifelist,
	)

	return c, nil
}

// cacheStores returns the species list and geocode label stores: Redis
// when configured and reachable, process memory otherwise.
func (c *Components) cacheStores(ctx context.Context, cfg *config.Config, logger *slog.Logger) (cache.Store, cache.Store) {
	if rc := cache.OpenRedis(cfg.Redis); rc != nil {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rc.Ping(pingCtx).Err(); err != nil {
			logger.WarnContext(ctx, "redis unreachable, using memory cache", slog.String("error", err.Error()))
			_ = rc.Close()
		} else {
			c.closers = append(c.closers, func() { _ = rc.Close() })
			c.Cache = cache.NewRedis(logger, rc, cfg.Resolver.CacheTTL)
			return c.Cache, cache.NewRedis(logger, rc, cfg.Geocoder.CacheTTL)
		}
	}
	return cache.NewMemory(cfg.Resolver.CacheTTL, cfg.Resolver.CacheCleanup),
		cache.NewMemory(cfg.Geocoder.CacheTTL, cfg.Resolver.CacheCleanup)
}

// Close releases connections in reverse order of acquisition.
func (c *Components) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
