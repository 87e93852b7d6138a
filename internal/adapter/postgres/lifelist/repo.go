// Package lifelist persists users' recorded sightings in PostgreSQL.
package lifelist

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

const (
	table  = "lifelist_entries"
	entity = "lifelist_entry"
)

var columns = []string{
	"id", "user_id", "species_id", "species_name", "date_spotted",
	"location", "notes", "created_at", "updated_at",
}

// Repo provides lifelist entry persistence.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a lifelist repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an entry owned by userID. Entries of other users are
// reported as domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.LifelistEntry, error) {
	sqlStr, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"id": entryID, "user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", entity, err)
	}

	e, err := scanEntry(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, entryID.String())
	}
	return &e, nil
}

// List returns one page of a user's entries, most recently spotted first,
// together with the user's total entry count.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LifelistEntry, int, error) {
	total, err := r.Count(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	sqlStr, args, err := postgres.Builder.Select(columns...).From(table).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("date_spotted DESC", "created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build %s list: %w", entity, err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, postgres.MapError(err, entity, "list")
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LifelistEntry, error) {
		return scanEntry(row)
	})
	if err != nil {
		return nil, 0, postgres.MapError(err, entity, "list")
	}

	return entries, total, nil
}

// Count returns the number of entries recorded by a user.
func (r *Repo) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	sqlStr, args, err := postgres.Builder.Select("count(*)").From(table).
		Where(sq.Eq{"user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", entity, err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, entity, "count")
	}
	return n, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts an entry and returns the stored row.
func (r *Repo) Create(ctx context.Context, e *domain.LifelistEntry) (*domain.LifelistEntry, error) {
	sqlStr, args, err := postgres.Builder.Insert(table).
		Columns(columns...).
		Values(e.ID, e.UserID, e.SpeciesID, e.SpeciesName, e.DateSpotted,
			e.Location, e.Notes, e.CreatedAt, e.UpdatedAt).
		Suffix("RETURNING " + joinColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s insert: %w", entity, err)
	}

	out, err := scanEntry(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		return nil, postgres.MapError(err, entity, e.ID.String())
	}
	return &out, nil
}

// Delete removes an entry owned by userID. Returns domain.ErrNotFound when
// nothing matched.
func (r *Repo) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	sqlStr, args, err := postgres.Builder.Delete(table).
		Where(sq.Eq{"id": entryID, "user_id": userID}).ToSql()
	if err != nil {
		return fmt.Errorf("build %s delete: %w", entity, err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, sqlStr, args...)
	if err != nil {
		return postgres.MapError(err, entity, entryID.String())
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", entity, entryID, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func scanEntry(row pgx.Row) (domain.LifelistEntry, error) {
	var e domain.LifelistEntry
	err := row.Scan(&e.ID, &e.UserID, &e.SpeciesID, &e.SpeciesName, &e.DateSpotted,
		&e.Location, &e.Notes, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

func joinColumns() string {
	return strings.Join(columns, ", ")
}
