// Package species reads the cached species catalog from PostgreSQL.
package species

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

const table = "species"

var columns = []string{
	"id", "name", "scientific_name", "category", "region", "primary_image_url", "image_urls",
	"conservation_status", "lat_min", "lat_max", "lon_min", "lon_max",
	"inaturalist_id", "wikipedia_url", "description", "observation_count", "source",
}

// Repo provides read access to the species catalog.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a species repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ReadAll returns every curated row and every unexpired provider-sourced
// row, ordered by name.
func (r *Repo) ReadAll(ctx context.Context) ([]domain.Species, error) {
	query := postgres.Builder.Select(columns...).From(table).
		Where(sq.Or{
			sq.Eq{"source": string(domain.SourceCatalog)},
			sq.Eq{"cache_expires_at": nil},
			sq.Expr("cache_expires_at > now()"),
		}).
		OrderBy("name ASC", "id ASC")
	return r.list(ctx, query, "all")
}

// GetByID returns one catalog row. Missing rows yield domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id string) (*domain.Species, error) {
	sqlStr, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build species query: %w", err)
	}

	s, err := scanSpecies(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, table, id)
	}
	return &s, nil
}

// GetByIDs returns the rows matching ids in no particular order. Unknown ids
// are skipped.
func (r *Repo) GetByIDs(ctx context.Context, ids []string) ([]domain.Species, error) {
	if len(ids) == 0 {
		return []domain.Species{}, nil
	}
	query := postgres.Builder.Select(columns...).From(table).Where(sq.Eq{"id": ids})
	return r.list(ctx, query, "batch")
}

// UpsertLive stores provider-sourced records until expiresAt, refreshing
// rows that already exist.
func (r *Repo) UpsertLive(ctx context.Context, records []domain.Species, expiresAt time.Time) error {
	if len(records) == 0 {
		return nil
	}

	query := postgres.Builder.Insert(table).Columns(append(columns, "cache_expires_at")...)
	for _, s := range records {
		var latMin, latMax, lonMin, lonMax *float64
		if s.Range != nil {
			latMin, latMax, lonMin, lonMax = &s.Range.LatMin, &s.Range.LatMax, &s.Range.LonMin, &s.Range.LonMax
		}
		imageURLs := s.ImageURLs
		if imageURLs == nil {
			imageURLs = []string{}
		}
		query = query.Values(
			s.ID, s.Name, s.ScientificName, string(s.Category), nullIfEmpty(s.Region), nullIfEmpty(s.ImageURL), imageURLs,
			string(s.Rarity), latMin, latMax, lonMin, lonMax,
			s.INaturalistID, s.WikipediaURL, s.Description, s.ObservationCount, string(s.Source),
			expiresAt,
		)
	}
	query = query.Suffix(`ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		scientific_name = EXCLUDED.scientific_name,
		category = EXCLUDED.category,
		region = EXCLUDED.region,
		primary_image_url = EXCLUDED.primary_image_url,
		image_urls = EXCLUDED.image_urls,
		conservation_status = EXCLUDED.conservation_status,
		lat_min = EXCLUDED.lat_min,
		lat_max = EXCLUDED.lat_max,
		lon_min = EXCLUDED.lon_min,
		lon_max = EXCLUDED.lon_max,
		inaturalist_id = EXCLUDED.inaturalist_id,
		wikipedia_url = EXCLUDED.wikipedia_url,
		description = EXCLUDED.description,
		observation_count = EXCLUDED.observation_count,
		cache_expires_at = EXCLUDED.cache_expires_at,
		updated_at = now()
		WHERE species.source <> 'catalog'`)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build species upsert: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...); err != nil {
		return postgres.MapError(err, table, "live")
	}
	return nil
}

// PruneExpired deletes provider-sourced rows whose cache expired before
// cutoff and returns how many were removed. Curated catalog rows are kept.
func (r *Repo) PruneExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	sqlStr, args, err := postgres.Builder.Delete(table).
		Where(sq.NotEq{"source": string(domain.SourceCatalog)}).
		Where(sq.Lt{"cache_expires_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build prune query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, postgres.MapError(err, table, "expired")
	}
	return tag.RowsAffected(), nil
}

func (r *Repo) list(ctx context.Context, query sq.SelectBuilder, what string) ([]domain.Species, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build species query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, postgres.MapError(err, table, what)
	}

	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Species, error) {
		return scanSpecies(row)
	})
	if err != nil {
		return nil, postgres.MapError(err, table, what)
	}
	return out, nil
}

type speciesRow struct {
	id, name, scientificName string
	category                 *string
	region                   *string
	imageURL                 *string
	imageURLs                []string
	conservationStatus       *string
	latMin, latMax           *float64
	lonMin, lonMax           *float64
	inaturalistID            *int64
	wikipediaURL             *string
	description              *string
	observationCount         *int64
	source                   string
}

func scanSpecies(row pgx.Row) (domain.Species, error) {
	var r speciesRow
	err := row.Scan(
		&r.id, &r.name, &r.scientificName, &r.category, &r.region, &r.imageURL, &r.imageURLs,
		&r.conservationStatus, &r.latMin, &r.latMax, &r.lonMin, &r.lonMax,
		&r.inaturalistID, &r.wikipediaURL, &r.description, &r.observationCount, &r.source,
	)
	if err != nil {
		return domain.Species{}, err
	}
	return r.toDomain(), nil
}

// toDomain applies the catalog defaults: unknown rarity is common, missing
// region is Unknown, and a range exists only when all four bounds do.
func (r speciesRow) toDomain() domain.Species {
	s := domain.Species{
		ID:               r.id,
		Name:             r.name,
		ScientificName:   r.scientificName,
		Category:         domain.ParseCategory(deref(r.category)),
		Region:           deref(r.region),
		ImageURL:         deref(r.imageURL),
		ImageURLs:        r.imageURLs,
		Rarity:           domain.ParseRarity(deref(r.conservationStatus)),
		INaturalistID:    r.inaturalistID,
		WikipediaURL:     r.wikipediaURL,
		Description:      r.description,
		ObservationCount: r.observationCount,
		Source:           domain.Source(r.source),
	}
	if s.Region == "" {
		s.Region = domain.UnknownRegion
	}
	if !s.Source.IsValid() {
		s.Source = domain.SourceCatalog
	}
	if r.latMin != nil && r.latMax != nil && r.lonMin != nil && r.lonMax != nil {
		s.Range = &domain.BoundingBox{LatMin: *r.latMin, LatMax: *r.latMax, LonMin: *r.lonMin, LonMax: *r.lonMax}
	}
	return s
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
