package lifelist

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/pkg/ctxutil"
)

var fixedNow = time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, repo *entryRepoMock) (*Service, *passthroughTx) {
	t.Helper()
	tx := &passthroughTx{}
	svc := NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), repo, tx, config.LifelistConfig{MaxEntriesPerUser: 3})
	svc.now = func() time.Time { return fixedNow }
	return svc, tx
}

func userCtx() (context.Context, uuid.UUID) {
	id := uuid.New()
	return ctxutil.WithUserID(context.Background(), id), id
}

func strPtr(s string) *string { return &s }

func echoCreate(_ context.Context, e *domain.LifelistEntry) (*domain.LifelistEntry, error) {
	out := *e
	return &out, nil
}

// ---------------------------------------------------------------------------
// AddEntry
// ---------------------------------------------------------------------------

func TestAddEntry_Success(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		CountFunc:  func(context.Context, uuid.UUID) (int, error) { return 0, nil },
		CreateFunc: echoCreate,
	}
	svc, tx := newTestService(t, repo)
	ctx, userID := userCtx()

	spotted := time.Date(2024, 5, 30, 18, 0, 0, 0, time.FixedZone("PDT", -7*3600))
	got, err := svc.AddEntry(ctx, AddEntryInput{
		SpeciesID:   " red-fox ",
		SpeciesName: " Red Fox ",
		DateSpotted: &spotted,
		Location:    strPtr("  Golden Gate Park "),
		Notes:       strPtr("   "),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, got.ID)
	assert.Equal(t, userID, got.UserID)
	assert.Equal(t, "red-fox", got.SpeciesID)
	assert.Equal(t, "Red Fox", got.SpeciesName)
	assert.Equal(t, time.Date(2024, 5, 31, 1, 0, 0, 0, time.UTC), got.DateSpotted)
	require.NotNil(t, got.Location)
	assert.Equal(t, "Golden Gate Park", *got.Location)
	assert.Nil(t, got.Notes, "blank notes are stored as null")
	assert.Equal(t, fixedNow, got.CreatedAt)
	assert.Equal(t, 1, tx.calls)
	assert.Equal(t, []uuid.UUID{userID}, repo.CountCalls())
}

func TestAddEntry_DefaultsDateToNow(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		CountFunc:  func(context.Context, uuid.UUID) (int, error) { return 0, nil },
		CreateFunc: echoCreate,
	}
	svc, _ := newTestService(t, repo)
	ctx, _ := userCtx()

	got, err := svc.AddEntry(ctx, AddEntryInput{SpeciesID: "owl", SpeciesName: "Barn Owl"})
	require.NoError(t, err)
	assert.Equal(t, fixedNow, got.DateSpotted)
}

func TestAddEntry_AcceptsSpeciesOutsideCatalog(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		CountFunc:  func(context.Context, uuid.UUID) (int, error) { return 0, nil },
		CreateFunc: echoCreate,
	}
	svc, tx := newTestService(t, repo)
	ctx, _ := userCtx()

	got, err := svc.AddEntry(ctx, AddEntryInput{SpeciesID: "inat-48484", SpeciesName: "Common Raven"})
	require.NoError(t, err)

	assert.Equal(t, "inat-48484", got.SpeciesID)
	assert.Equal(t, "Common Raven", got.SpeciesName)
	assert.Equal(t, 1, tx.calls)
	assert.Len(t, repo.CountCalls(), 1)
	assert.Len(t, repo.CreateCalls(), 1)
}

func TestAddEntry_Full(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		CountFunc: func(context.Context, uuid.UUID) (int, error) { return 3, nil },
	}
	svc, _ := newTestService(t, repo)
	ctx, _ := userCtx()

	_, err := svc.AddEntry(ctx, AddEntryInput{SpeciesID: "owl", SpeciesName: "Barn Owl"})
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "max 3")
	assert.Empty(t, repo.CreateCalls())
}

func TestAddEntry_Unauthorized(t *testing.T) {
	t.Parallel()

	svc, tx := newTestService(t, &entryRepoMock{})
	_, err := svc.AddEntry(context.Background(), AddEntryInput{SpeciesID: "owl", SpeciesName: "Barn Owl"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, tx.calls)
}

func TestAddEntry_RepoError(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		CountFunc: func(context.Context, uuid.UUID) (int, error) { return 0, nil },
		CreateFunc: func(context.Context, *domain.LifelistEntry) (*domain.LifelistEntry, error) {
			return nil, domain.NewStoreError("insert", errors.New("disk full"))
		},
	}
	svc, _ := newTestService(t, repo)
	ctx, _ := userCtx()

	_, err := svc.AddEntry(ctx, AddEntryInput{SpeciesID: "owl", SpeciesName: "Barn Owl"})
	assert.ErrorIs(t, err, domain.ErrStore)
}

func TestAddEntryInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    AddEntryInput
		field string
	}{
		{"missing species id", AddEntryInput{SpeciesName: "Owl"}, "species_id"},
		{"missing species name", AddEntryInput{SpeciesID: "owl", SpeciesName: "  "}, "species_name"},
		{"name too long", AddEntryInput{SpeciesID: "owl", SpeciesName: strings.Repeat("o", 201)}, "species_name"},
		{"location too long", AddEntryInput{SpeciesID: "owl", SpeciesName: "Owl", Location: strPtr(strings.Repeat("l", 201))}, "location"},
		{"notes too long", AddEntryInput{SpeciesID: "owl", SpeciesName: "Owl", Notes: strPtr(strings.Repeat("n", 2001))}, "notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ve *domain.ValidationError
			require.ErrorAs(t, tt.in.Validate(), &ve)
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

// ---------------------------------------------------------------------------
// ListEntries
// ---------------------------------------------------------------------------

func TestListEntries_DefaultLimit(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		ListFunc: func(_ context.Context, _ uuid.UUID, limit, offset int) ([]domain.LifelistEntry, int, error) {
			return []domain.LifelistEntry{{SpeciesName: "Barn Owl"}}, 7, nil
		},
	}
	svc, _ := newTestService(t, repo)
	ctx, _ := userCtx()

	entries, total, err := svc.ListEntries(ctx, ListEntriesInput{Offset: 5})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 7, total)

	calls := repo.ListCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, DefaultLimit, calls[0].Limit)
	assert.Equal(t, 5, calls[0].Offset)
}

func TestListEntries_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &entryRepoMock{})
	ctx, _ := userCtx()

	_, _, err := svc.ListEntries(ctx, ListEntriesInput{Limit: 201})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = svc.ListEntries(ctx, ListEntriesInput{Offset: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestListEntries_Unauthorized(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &entryRepoMock{})
	_, _, err := svc.ListEntries(context.Background(), ListEntriesInput{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ---------------------------------------------------------------------------
// GetEntry / DeleteEntry
// ---------------------------------------------------------------------------

func TestGetEntry(t *testing.T) {
	t.Parallel()

	entryID := uuid.New()
	repo := &entryRepoMock{
		GetByIDFunc: func(_ context.Context, userID, id uuid.UUID) (*domain.LifelistEntry, error) {
			if id != entryID {
				return nil, domain.ErrNotFound
			}
			return &domain.LifelistEntry{ID: id, UserID: userID}, nil
		},
	}
	svc, _ := newTestService(t, repo)
	ctx, userID := userCtx()

	got, err := svc.GetEntry(ctx, entryID)
	require.NoError(t, err)
	assert.Equal(t, userID, got.UserID)

	_, err = svc.GetEntry(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteEntry(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		DeleteFunc: func(context.Context, uuid.UUID, uuid.UUID) error { return nil },
	}
	svc, _ := newTestService(t, repo)
	ctx, userID := userCtx()
	entryID := uuid.New()

	require.NoError(t, svc.DeleteEntry(ctx, DeleteEntryInput{EntryID: entryID}))

	calls := repo.DeleteCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, userID, calls[0].UserID)
	assert.Equal(t, entryID, calls[0].EntryID)
}

func TestDeleteEntry_NotFound(t *testing.T) {
	t.Parallel()

	repo := &entryRepoMock{
		DeleteFunc: func(context.Context, uuid.UUID, uuid.UUID) error { return domain.ErrNotFound },
	}
	svc, _ := newTestService(t, repo)
	ctx, _ := userCtx()

	err := svc.DeleteEntry(ctx, DeleteEntryInput{EntryID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteEntry_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t, &entryRepoMock{})
	ctx, _ := userCtx()

	err := svc.DeleteEntry(ctx, DeleteEntryInput{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
