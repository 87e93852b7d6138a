package lifelist_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres/lifelist"
	"github.com/heartmarshall/wildlife-backend/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

func newRepo(t *testing.T) *lifelist.Repo {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	return lifelist.New(testhelper.SetupTestDB(t))
}

func buildEntry(userID uuid.UUID, name string, spotted time.Time, location *string) *domain.LifelistEntry {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.LifelistEntry{
		ID:          uuid.New(),
		UserID:      userID,
		SpeciesID:   "inaturalist-" + name,
		SpeciesName: name,
		DateSpotted: spotted.UTC().Truncate(time.Microsecond),
		Location:    location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func strPtr(s string) *string { return &s }

func TestRepo_Create_HappyPath(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	in := buildEntry(uuid.New(), "Bald Eagle", time.Now(), strPtr("Lake Tahoe"))
	got, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: unexpected error: %v", err)
	}

	if got.ID != in.ID {
		t.Errorf("ID mismatch: got %s, want %s", got.ID, in.ID)
	}
	if got.SpeciesName != "Bald Eagle" {
		t.Errorf("SpeciesName = %q", got.SpeciesName)
	}
	if got.Location == nil || *got.Location != "Lake Tahoe" {
		t.Errorf("Location = %v, want Lake Tahoe", got.Location)
	}
	if got.Notes != nil {
		t.Errorf("Notes = %v, want nil", got.Notes)
	}
	if !got.DateSpotted.Equal(in.DateSpotted) {
		t.Errorf("DateSpotted = %v, want %v", got.DateSpotted, in.DateSpotted)
	}
}

func TestRepo_Create_DuplicateID(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	in := buildEntry(uuid.New(), "Red Fox", time.Now(), nil)
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := repo.Create(ctx, in)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("second Create error = %v, want ErrAlreadyExists", err)
	}
}

func TestRepo_List_OrderAndPagination(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()
	userID := uuid.New()

	base := time.Now().Add(-72 * time.Hour)
	for i, name := range []string{"oldest", "middle", "newest"} {
		if _, err := repo.Create(ctx, buildEntry(userID, name, base.Add(time.Duration(i)*time.Hour), nil)); err != nil {
			t.Fatalf("Create %s: %v", name, err)
		}
	}
	// Someone else's entry must not leak into the list.
	if _, err := repo.Create(ctx, buildEntry(uuid.New(), "other", time.Now(), nil)); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	page, total, err := repo.List(ctx, userID, 2, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(page) != 2 || page[0].SpeciesName != "newest" || page[1].SpeciesName != "middle" {
		t.Fatalf("unexpected first page: %+v", page)
	}

	page, _, err = repo.List(ctx, userID, 2, 2)
	if err != nil {
		t.Fatalf("List page 2: %v", err)
	}
	if len(page) != 1 || page[0].SpeciesName != "oldest" {
		t.Fatalf("unexpected second page: %+v", page)
	}
}

func TestRepo_List_Empty(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)

	page, total, err := repo.List(context.Background(), uuid.New(), 10, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 0 || len(page) != 0 {
		t.Fatalf("expected empty list, got %d entries (total %d)", len(page), total)
	}
}

func TestRepo_GetByID_OtherUser(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	in := buildEntry(uuid.New(), "Barn Owl", time.Now(), nil)
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.GetByID(ctx, in.UserID, in.ID); err != nil {
		t.Fatalf("GetByID owner: %v", err)
	}
	if _, err := repo.GetByID(ctx, uuid.New(), in.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByID other user error = %v, want ErrNotFound", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()
	repo := newRepo(t)
	ctx := context.Background()

	in := buildEntry(uuid.New(), "Gray Wolf", time.Now(), nil)
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := repo.Delete(ctx, uuid.New(), in.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Delete by other user error = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(ctx, in.UserID, in.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, in.UserID, in.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second Delete error = %v, want ErrNotFound", err)
	}

	n, err := repo.Count(ctx, in.UserID)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d, want 0", n)
	}
}
