package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/metrics"
	"github.com/heartmarshall/wildlife-backend/internal/transport/dataloader"
	"github.com/heartmarshall/wildlife-backend/internal/transport/middleware"
	"github.com/heartmarshall/wildlife-backend/internal/transport/rest"
)

// Run is the server entry point. It wires every component, serves HTTP
// until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	c, err := Build(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	handler, stop := NewHandler(cfg, c, logger)
	defer stop()

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", slog.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// NewHandler assembles the router and middleware chain. The returned stop
// function releases background resources held by the middleware.
func NewHandler(cfg *config.Config, c *Components, logger *slog.Logger) (http.Handler, func()) {
	checks := []rest.HealthCheck{{Name: "database", Critical: true, Pinger: c.Pool}}
	if c.Cache != nil {
		checks = append(checks, rest.HealthCheck{Name: "cache", Pinger: c.Cache})
	}

	mux := rest.NewRouter(rest.Handlers{
		Health:   rest.NewHealthHandler(Version, checks...),
		Species:  rest.NewSpeciesHandler(c.Explore, c.Chat, logger),
		Location: rest.NewLocationHandler(c.Location, logger),
		Lifelist: rest.NewLifelistHandler(c.Lifelist, logger),
		Metrics:  metrics.Handler(),
	}, dataloader.Middleware(c.Species))

	mws := []middleware.Middleware{
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.ClientIP(cfg.Server.TrustProxy),
		middleware.Logger(logger),
		middleware.Metrics,
		middleware.CORS(cfg.CORS),
	}

	stop := func() {}
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.CleanupEvery)
		mws = append(mws, rl.Limit(cfg.RateLimit.RequestsPerMin))
		stop = rl.Stop
	}
	mws = append(mws, middleware.Auth(c.Verifier, logger))

	return middleware.Chain(mws...)(middleware.Routed(mux)), stop
}
