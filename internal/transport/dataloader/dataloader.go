// Package dataloader provides per-request DataLoaders that batch species
// lookups made while rendering lifelist entries into single SQL calls.
package dataloader

import (
	"context"
	"net/http"
	"time"

	"github.com/graph-gophers/dataloader/v7"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

const (
	maxBatch = 100
	wait     = 2 * time.Millisecond
)

type speciesRepo interface {
	GetByIDs(ctx context.Context, ids []string) ([]domain.Species, error)
}

// Loaders contains the per-request DataLoaders. Created via NewLoaders.
type Loaders struct {
	SpeciesByID *dataloader.Loader[string, *domain.Species]
}

// NewLoaders creates a new set of DataLoaders backed by the species catalog.
// Must be called per-request (loaders cache results within a single request).
func NewLoaders(species speciesRepo) *Loaders {
	return &Loaders{
		SpeciesByID: dataloader.NewBatchedLoader(
			newSpeciesBatchFn(species),
			dataloader.WithWait[string, *domain.Species](wait),
			dataloader.WithBatchCapacity[string, *domain.Species](maxBatch),
		),
	}
}

// newSpeciesBatchFn resolves species by id. Ids the catalog does not hold
// resolve to nil rather than an error.
func newSpeciesBatchFn(repo speciesRepo) dataloader.BatchFunc[string, *domain.Species] {
	return func(ctx context.Context, keys []string) []*dataloader.Result[*domain.Species] {
		rows, err := repo.GetByIDs(ctx, keys)
		if err != nil {
			results := make([]*dataloader.Result[*domain.Species], len(keys))
			for i := range results {
				results[i] = &dataloader.Result[*domain.Species]{Error: err}
			}
			return results
		}

		byID := make(map[string]*domain.Species, len(rows))
		for i := range rows {
			byID[rows[i].ID] = &rows[i]
		}

		results := make([]*dataloader.Result[*domain.Species], len(keys))
		for i, key := range keys {
			results[i] = &dataloader.Result[*domain.Species]{Data: byID[key]}
		}
		return results
	}
}

type contextKey string

const loadersKey contextKey = "dataloaders"

// WithLoaders stores Loaders in the context.
func WithLoaders(ctx context.Context, l *Loaders) context.Context {
	return context.WithValue(ctx, loadersKey, l)
}

// FromContext retrieves Loaders from the context, or nil when the
// middleware did not run.
func FromContext(ctx context.Context) *Loaders {
	l, _ := ctx.Value(loadersKey).(*Loaders)
	return l
}

// Middleware instantiates per-request DataLoaders and stores them in the
// request context.
func Middleware(species speciesRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithLoaders(r.Context(), NewLoaders(species))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
