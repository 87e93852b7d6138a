package explore

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/provider"
	"github.com/heartmarshall/wildlife-backend/internal/service/resolver"
)

var _ speciesResolver = &speciesResolverMock{}

type speciesResolverMock struct {
	ResolveFunc               func(ctx context.Context, q resolver.Query) (*resolver.Result, error)
	ResolveRegionFilteredFunc func(ctx context.Context, q resolver.Query, region string) (*resolver.Result, error)

	calls struct {
		Resolve []struct {
			Q resolver.Query
		}
		ResolveRegionFiltered []struct {
			Q      resolver.Query
			Region string
		}
	}
	lockResolve               sync.RWMutex
	lockResolveRegionFiltered sync.RWMutex
}

func (mock *speciesResolverMock) Resolve(ctx context.Context, q resolver.Query) (*resolver.Result, error) {
	if mock.ResolveFunc == nil {
		panic("speciesResolverMock.ResolveFunc: method is nil but speciesResolver.Resolve was just called")
	}
	mock.lockResolve.Lock()
	mock.calls.Resolve = append(mock.calls.Resolve, struct{ Q resolver.Query }{Q: q})
	mock.lockResolve.Unlock()
	return mock.ResolveFunc(ctx, q)
}

func (mock *speciesResolverMock) ResolveCalls() []struct{ Q resolver.Query } {
	mock.lockResolve.RLock()
	defer mock.lockResolve.RUnlock()
	return mock.calls.Resolve
}

func (mock *speciesResolverMock) ResolveRegionFiltered(ctx context.Context, q resolver.Query, region string) (*resolver.Result, error) {
	if mock.ResolveRegionFilteredFunc == nil {
		panic("speciesResolverMock.ResolveRegionFilteredFunc: method is nil but speciesResolver.ResolveRegionFiltered was just called")
	}
	mock.lockResolveRegionFiltered.Lock()
	mock.calls.ResolveRegionFiltered = append(mock.calls.ResolveRegionFiltered, struct {
		Q      resolver.Query
		Region string
	}{Q: q, Region: region})
	mock.lockResolveRegionFiltered.Unlock()
	return mock.ResolveRegionFilteredFunc(ctx, q, region)
}

func (mock *speciesResolverMock) ResolveRegionFilteredCalls() []struct {
	Q      resolver.Query
	Region string
} {
	mock.lockResolveRegionFiltered.RLock()
	defer mock.lockResolveRegionFiltered.RUnlock()
	return mock.calls.ResolveRegionFiltered
}

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	GetByIDFunc    func(ctx context.Context, id string) (*domain.Species, error)
	UpsertLiveFunc func(ctx context.Context, records []domain.Species, expiresAt time.Time) error

	calls struct {
		UpsertLive []struct {
			Records   []domain.Species
			ExpiresAt time.Time
		}
	}
	lockUpsertLive sync.RWMutex
}

func (mock *catalogRepoMock) GetByID(ctx context.Context, id string) (*domain.Species, error) {
	if mock.GetByIDFunc == nil {
		panic("catalogRepoMock.GetByIDFunc: method is nil but catalogRepo.GetByID was just called")
	}
	return mock.GetByIDFunc(ctx, id)
}

func (mock *catalogRepoMock) UpsertLive(ctx context.Context, records []domain.Species, expiresAt time.Time) error {
	if mock.UpsertLiveFunc == nil {
		panic("catalogRepoMock.UpsertLiveFunc: method is nil but catalogRepo.UpsertLive was just called")
	}
	mock.lockUpsertLive.Lock()
	mock.calls.UpsertLive = append(mock.calls.UpsertLive, struct {
		Records   []domain.Species
		ExpiresAt time.Time
	}{Records: records, ExpiresAt: expiresAt})
	mock.lockUpsertLive.Unlock()
	return mock.UpsertLiveFunc(ctx, records, expiresAt)
}

func (mock *catalogRepoMock) UpsertLiveCalls() []struct {
	Records   []domain.Species
	ExpiresAt time.Time
} {
	mock.lockUpsertLive.RLock()
	defer mock.lockUpsertLive.RUnlock()
	return mock.calls.UpsertLive
}

type memCache struct {
	mu sync.Mutex
	m  map[string][]domain.Species
}

func newMemCache() *memCache { return &memCache{m: map[string][]domain.Species{}} }

func (c *memCache) Get(_ context.Context, key string) ([]domain.Species, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *memCache) Set(_ context.Context, key string, list []domain.Species) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = list
}

type staticPlaces string

func (p staticPlaces) CityName(context.Context, domain.Point) string { return string(p) }

// stuckPlaces never answers until release is closed and ignores ctx.
type stuckPlaces struct{ release chan struct{} }

func (p stuckPlaces) CityName(context.Context, domain.Point) string {
	<-p.release
	return "too late"
}

type placesFunc func(ctx context.Context, p domain.Point) string

func (f placesFunc) CityName(ctx context.Context, p domain.Point) string { return f(ctx, p) }

type excerptFunc func(ctx context.Context, articleURL string) (*provider.Article, error)

func (f excerptFunc) FetchExcerpt(ctx context.Context, articleURL string) (*provider.Article, error) {
	return f(ctx, articleURL)
}
