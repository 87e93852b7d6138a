package species_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres/species"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

func newRepo(t *testing.T) (*species.Repo, *pgxpool.Pool) {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	pool := testhelper.SetupTestDB(t)
	return species.New(pool), pool
}

func TestRepo_ReadAll_MapsRows(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	box := domain.BoundingBox{LatMin: 30, LatMax: 60, LonMin: -10, LonMax: 30}
	fox := testhelper.SeedSpecies(t, pool, "Red Fox",
		testhelper.WithCategory(domain.CategoryMammal),
		testhelper.WithRegion("Europe"),
		testhelper.WithRange(box),
		testhelper.WithConservationStatus("uncommon"),
	)
	bare := testhelper.SeedSpecies(t, pool, "Mystery Moth")

	all, err := repo.ReadAll(ctx)
	require.NoError(t, err)

	byID := make(map[string]domain.Species, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}

	gotFox, ok := byID[fox.ID]
	require.True(t, ok, "seeded fox should be returned")
	assert.Equal(t, domain.CategoryMammal, gotFox.Category)
	assert.Equal(t, "Europe", gotFox.Region)
	assert.Equal(t, domain.RarityUncommon, gotFox.Rarity)
	require.NotNil(t, gotFox.Range)
	assert.Equal(t, box, *gotFox.Range)

	gotBare, ok := byID[bare.ID]
	require.True(t, ok)
	assert.Equal(t, domain.UnknownRegion, gotBare.Region)
	assert.Equal(t, domain.RarityCommon, gotBare.Rarity)
	assert.Nil(t, gotBare.Range)
}

func TestRepo_GetByID(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	sp := testhelper.SeedSpecies(t, pool, "Gray Wolf", testhelper.WithCategory(domain.CategoryMammal))

	got, err := repo.GetByID(ctx, sp.ID)
	require.NoError(t, err)
	assert.Equal(t, sp.ScientificName, got.ScientificName)

	_, err = repo.GetByID(ctx, "does-not-exist")
	assert.True(t, errors.Is(err, domain.ErrNotFound), "got %v", err)
}

func TestRepo_GetByIDs(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	a := testhelper.SeedSpecies(t, pool, "Barn Owl")
	b := testhelper.SeedSpecies(t, pool, "Snowy Owl")

	got, err := repo.GetByIDs(ctx, []string{a.ID, b.ID, "missing"})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	empty, err := repo.GetByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepo_PruneExpired(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	stale := testhelper.SeedSpecies(t, pool, "Stale Heron",
		testhelper.WithSource(domain.SourceINaturalist), testhelper.WithCacheExpiresAt(past))
	fresh := testhelper.SeedSpecies(t, pool, "Fresh Heron",
		testhelper.WithSource(domain.SourceINaturalist), testhelper.WithCacheExpiresAt(future))
	curated := testhelper.SeedSpecies(t, pool, "Curated Heron",
		testhelper.WithSource(domain.SourceCatalog), testhelper.WithCacheExpiresAt(past))

	n, err := repo.PruneExpired(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, int64(1))

	_, err = repo.GetByID(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, fresh.ID)
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, curated.ID)
	assert.NoError(t, err)
}

func TestRepo_ReadAll_CancelledContext(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.ReadAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRepo_UpsertLive(t *testing.T) {
	t.Parallel()
	repo, _ := newRepo(t)
	ctx := context.Background()

	id := testhelper.UniqueID("inaturalist")
	inatID := int64(42069)
	live := domain.Species{
		ID:             id,
		Name:           "Red Fox",
		ScientificName: "Vulpes vulpes",
		Category:       domain.CategoryMammal,
		Region:         "Europe",
		ImageURL:       "https://static.inaturalist.org/photos/1/medium.jpg",
		Rarity:         domain.RarityCommon,
		Range:          &domain.BoundingBox{LatMin: 50.5, LatMax: 52.5, LonMin: -1.1, LonMax: 0.9},
		INaturalistID:  &inatID,
		Source:         domain.SourceINaturalist,
	}

	require.NoError(t, repo.UpsertLive(ctx, []domain.Species{live}, time.Now().Add(time.Hour)))

	got, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.SourceINaturalist, got.Source)
	assert.Equal(t, *live.Range, *got.Range)
	assert.Empty(t, got.ImageURLs)

	live.Name = "Red fox"
	require.NoError(t, repo.UpsertLive(ctx, []domain.Species{live}, time.Now().Add(-time.Minute)))

	got, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Red fox", got.Name)

	all, err := repo.ReadAll(ctx)
	require.NoError(t, err)
	for _, s := range all {
		assert.NotEqual(t, id, s.ID, "expired live rows are not read back")
	}
}

func TestRepo_UpsertLive_KeepsCuratedRows(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()

	curated := testhelper.SeedSpecies(t, pool, "Curated Owl")

	overwrite := curated
	overwrite.Name = "Overwritten"
	overwrite.Source = domain.SourceINaturalist
	require.NoError(t, repo.UpsertLive(ctx, []domain.Species{overwrite}, time.Now().Add(time.Hour)))

	got, err := repo.GetByID(ctx, curated.ID)
	require.NoError(t, err)
	assert.Equal(t, "Curated Owl", got.Name)
	assert.Equal(t, domain.SourceCatalog, got.Source)
}
