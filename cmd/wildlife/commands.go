package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/wildlife-backend/internal/app"
	"github.com/heartmarshall/wildlife-backend/internal/auth"
	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/service/resolver"
)

// env carries what every subcommand needs after PersistentPreRunE.
type env struct {
	cfg    *config.Config
	logger *slog.Logger
}

func rootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:          "wildlife",
		Short:        "Wildlife discovery backend",
		Version:      app.BuildVersion(),
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = app.NewLogger(cfg.Log, os.Stderr)
			return nil
		},
	}

	root.AddCommand(
		serveCommand(e),
		resolveCommand(e),
		pruneCacheCommand(e),
		tokenCommand(e),
	)
	return root
}

func serveCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until SIGINT or SIGTERM",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return app.Run(ctx, e.cfg, e.logger)
		},
	}
}

func resolveCommand(e *env) *cobra.Command {
	var (
		lat, lon, radius float64
		text             string
		categories       []string
		region           string
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Run one species resolution and print the result as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			c, err := app.Build(ctx, e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			q := resolver.Query{MaxDistanceKm: radius, SearchText: text}
			if cmd.Flags().Changed("lat") || cmd.Flags().Changed("lon") {
				q.Point = &domain.Point{Latitude: lat, Longitude: lon}
			}
			for _, raw := range categories {
				q.Categories = append(q.Categories, domain.Category(strings.ToLower(strings.TrimSpace(raw))))
			}

			var res *resolver.Result
			if region != "" {
				res, err = c.Resolver.ResolveRegionFiltered(ctx, q, region)
			} else {
				res, err = c.Resolver.Resolve(ctx, q)
			}
			if err != nil {
				return err
			}

			return printResult(cmd, res)
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "Latitude in decimal degrees")
	cmd.Flags().Float64Var(&lon, "lon", 0, "Longitude in decimal degrees")
	cmd.Flags().Float64Var(&radius, "radius", 0, "Search radius in km (default from config)")
	cmd.Flags().StringVar(&text, "q", "", "Case-insensitive text filter")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Category filter, repeatable")
	cmd.Flags().StringVar(&region, "region", "", "Region filter, cannot be combined with coordinates")
	return cmd
}

type resolveOutput struct {
	Status   string           `json:"status"`
	Degraded []degradedOutput `json:"degraded,omitempty"`
	Count    int              `json:"count"`
	Species  []domain.Species `json:"species"`
}

type degradedOutput struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

func printResult(cmd *cobra.Command, res *resolver.Result) error {
	out := resolveOutput{Status: string(res.Status), Count: len(res.Species), Species: res.Species}
	for _, r := range res.Reasons {
		out.Degraded = append(out.Degraded, degradedOutput{Source: r.Source, Error: r.Err.Error()})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func pruneCacheCommand(e *env) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune-cache",
		Short: "Delete provider-sourced species whose cache expired",
		Long: "Deletes iNaturalist-sourced catalog rows whose expiry passed more than\n" +
			"--older-than ago. Curated rows are never touched. Intended for cron.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if olderThan < 0 {
				return fmt.Errorf("--older-than must not be negative")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()

			c, err := app.Build(ctx, e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer c.Close()

			cutoff := time.Now().Add(-olderThan)
			deleted, err := c.Species.PruneExpired(ctx, cutoff)
			if err != nil {
				e.logger.Error("prune failed",
					slog.String("error", err.Error()),
					slog.Time("cutoff", cutoff),
				)
				return err
			}

			e.logger.Info("prune completed",
				slog.Int64("deleted", deleted),
				slog.Time("cutoff", cutoff),
			)
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Grace period after expiry before rows are deleted")
	return cmd
}

func tokenCommand(e *env) *cobra.Command {
	var (
		userID string
		ttl    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			id := uuid.New()
			if userID != "" {
				parsed, err := uuid.Parse(userID)
				if err != nil {
					return fmt.Errorf("--user: %w", err)
				}
				id = parsed
			}

			token, err := auth.NewVerifier(e.cfg.Auth).Sign(id, ttl)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "User ID (random when empty)")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")
	return cmd
}
