package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
	"github.com/heartmarshall/wildlife-backend/internal/service/chat"
	"github.com/heartmarshall/wildlife-backend/internal/service/explore"
	"github.com/heartmarshall/wildlife-backend/internal/service/lifelist"
	"github.com/heartmarshall/wildlife-backend/internal/service/location"
)

//go:generate moq -out mocks_test.go -pkg rest . exploreService chatService locationService lifelistService

var (
	_ exploreService  = &exploreServiceMock{}
	_ chatService     = &chatServiceMock{}
	_ locationService = &locationServiceMock{}
	_ lifelistService = &lifelistServiceMock{}
)

type exploreServiceMock struct {
	ExploreFunc    func(ctx context.Context, in explore.ExploreInput) (*explore.ExploreResult, error)
	GetSpeciesFunc func(ctx context.Context, id string) (*explore.SpeciesDetail, error)

	mu           sync.Mutex
	exploreCalls []explore.ExploreInput
	getCalls     []string
}

func (m *exploreServiceMock) Explore(ctx context.Context, in explore.ExploreInput) (*explore.ExploreResult, error) {
	if m.ExploreFunc == nil {
		panic("exploreServiceMock.ExploreFunc: method is nil but exploreService.Explore was just called")
	}
	m.mu.Lock()
	m.exploreCalls = append(m.exploreCalls, in)
	m.mu.Unlock()
	return m.ExploreFunc(ctx, in)
}

func (m *exploreServiceMock) ExploreCalls() []explore.ExploreInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exploreCalls
}

func (m *exploreServiceMock) GetSpecies(ctx context.Context, id string) (*explore.SpeciesDetail, error) {
	if m.GetSpeciesFunc == nil {
		panic("exploreServiceMock.GetSpeciesFunc: method is nil but exploreService.GetSpecies was just called")
	}
	m.mu.Lock()
	m.getCalls = append(m.getCalls, id)
	m.mu.Unlock()
	return m.GetSpeciesFunc(ctx, id)
}

func (m *exploreServiceMock) GetSpeciesCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.getCalls
}

type chatServiceMock struct {
	EnabledFunc func() bool
	AskFunc     func(ctx context.Context, in chat.AskInput) (*chat.Message, error)

	mu       sync.Mutex
	askCalls []chat.AskInput
}

func (m *chatServiceMock) Enabled() bool {
	if m.EnabledFunc == nil {
		panic("chatServiceMock.EnabledFunc: method is nil but chatService.Enabled was just called")
	}
	return m.EnabledFunc()
}

func (m *chatServiceMock) Ask(ctx context.Context, in chat.AskInput) (*chat.Message, error) {
	if m.AskFunc == nil {
		panic("chatServiceMock.AskFunc: method is nil but chatService.Ask was just called")
	}
	m.mu.Lock()
	m.askCalls = append(m.askCalls, in)
	m.mu.Unlock()
	return m.AskFunc(ctx, in)
}

func (m *chatServiceMock) AskCalls() []chat.AskInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.askCalls
}

type locationServiceMock struct {
	CityNameFunc     func(ctx context.Context, p domain.Point) string
	LocateFunc       func(ctx context.Context, ip string) (*location.Located, error)
	DetectRegionFunc func(p domain.Point) string

	mu          sync.Mutex
	locateCalls []string
}

func (m *locationServiceMock) CityName(ctx context.Context, p domain.Point) string {
	if m.CityNameFunc == nil {
		panic("locationServiceMock.CityNameFunc: method is nil but locationService.CityName was just called")
	}
	return m.CityNameFunc(ctx, p)
}

func (m *locationServiceMock) Locate(ctx context.Context, ip string) (*location.Located, error) {
	if m.LocateFunc == nil {
		panic("locationServiceMock.LocateFunc: method is nil but locationService.Locate was just called")
	}
	m.mu.Lock()
	m.locateCalls = append(m.locateCalls, ip)
	m.mu.Unlock()
	return m.LocateFunc(ctx, ip)
}

func (m *locationServiceMock) LocateCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locateCalls
}

func (m *locationServiceMock) DetectRegion(p domain.Point) string {
	if m.DetectRegionFunc == nil {
		panic("locationServiceMock.DetectRegionFunc: method is nil but locationService.DetectRegion was just called")
	}
	return m.DetectRegionFunc(p)
}

type lifelistServiceMock struct {
	AddEntryFunc    func(ctx context.Context, input lifelist.AddEntryInput) (*domain.LifelistEntry, error)
	ListEntriesFunc func(ctx context.Context, input lifelist.ListEntriesInput) ([]domain.LifelistEntry, int, error)
	GetEntryFunc    func(ctx context.Context, entryID uuid.UUID) (*domain.LifelistEntry, error)
	DeleteEntryFunc func(ctx context.Context, input lifelist.DeleteEntryInput) error

	mu        sync.Mutex
	addCalls  []lifelist.AddEntryInput
	listCalls []lifelist.ListEntriesInput
}

func (m *lifelistServiceMock) AddEntry(ctx context.Context, input lifelist.AddEntryInput) (*domain.LifelistEntry, error) {
	if m.AddEntryFunc == nil {
		panic("lifelistServiceMock.AddEntryFunc: method is nil but lifelistService.AddEntry was just called")
	}
	m.mu.Lock()
	m.addCalls = append(m.addCalls, input)
	m.mu.Unlock()
	return m.AddEntryFunc(ctx, input)
}

func (m *lifelistServiceMock) AddEntryCalls() []lifelist.AddEntryInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.addCalls
}

func (m *lifelistServiceMock) ListEntries(ctx context.Context, input lifelist.ListEntriesInput) ([]domain.LifelistEntry, int, error) {
	if m.ListEntriesFunc == nil {
		panic("lifelistServiceMock.ListEntriesFunc: method is nil but lifelistService.ListEntries was just called")
	}
	m.mu.Lock()
	m.listCalls = append(m.listCalls, input)
	m.mu.Unlock()
	return m.ListEntriesFunc(ctx, input)
}

func (m *lifelistServiceMock) ListEntriesCalls() []lifelist.ListEntriesInput {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listCalls
}

func (m *lifelistServiceMock) GetEntry(ctx context.Context, entryID uuid.UUID) (*domain.LifelistEntry, error) {
	if m.GetEntryFunc == nil {
		panic("lifelistServiceMock.GetEntryFunc: method is nil but lifelistService.GetEntry was just called")
	}
	return m.GetEntryFunc(ctx, entryID)
}

func (m *lifelistServiceMock) DeleteEntry(ctx context.Context, input lifelist.DeleteEntryInput) error {
	if m.DeleteEntryFunc == nil {
		panic("lifelistServiceMock.DeleteEntryFunc: method is nil but lifelistService.DeleteEntry was just called")
	}
	return m.DeleteEntryFunc(ctx, input)
}
