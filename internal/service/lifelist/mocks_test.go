package lifelist

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

var _ entryRepo = &entryRepoMock{}

type entryRepoMock struct {
	CreateFunc  func(ctx context.Context, e *domain.LifelistEntry) (*domain.LifelistEntry, error)
	GetByIDFunc func(ctx context.Context, userID, entryID uuid.UUID) (*domain.LifelistEntry, error)
	ListFunc    func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LifelistEntry, int, error)
	CountFunc   func(ctx context.Context, userID uuid.UUID) (int, error)
	DeleteFunc  func(ctx context.Context, userID, entryID uuid.UUID) error

	mu    sync.Mutex
	calls struct {
		Create []*domain.LifelistEntry
		List   []struct{ Limit, Offset int }
		Count  []uuid.UUID
		Delete []struct{ UserID, EntryID uuid.UUID }
	}
}

func (m *entryRepoMock) Create(ctx context.Context, e *domain.LifelistEntry) (*domain.LifelistEntry, error) {
	if m.CreateFunc == nil {
		panic("entryRepoMock.CreateFunc: method is nil but entryRepo.Create was just called")
	}
	m.mu.Lock()
	m.calls.Create = append(m.calls.Create, e)
	m.mu.Unlock()
	return m.CreateFunc(ctx, e)
}

func (m *entryRepoMock) CreateCalls() []*domain.LifelistEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Create
}

func (m *entryRepoMock) GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.LifelistEntry, error) {
	if m.GetByIDFunc == nil {
		panic("entryRepoMock.GetByIDFunc: method is nil but entryRepo.GetByID was just called")
	}
	return m.GetByIDFunc(ctx, userID, entryID)
}

func (m *entryRepoMock) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LifelistEntry, int, error) {
	if m.ListFunc == nil {
		panic("entryRepoMock.ListFunc: method is nil but entryRepo.List was just called")
	}
	m.mu.Lock()
	m.calls.List = append(m.calls.List, struct{ Limit, Offset int }{limit, offset})
	m.mu.Unlock()
	return m.ListFunc(ctx, userID, limit, offset)
}

func (m *entryRepoMock) ListCalls() []struct{ Limit, Offset int } {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.List
}

func (m *entryRepoMock) Count(ctx context.Context, userID uuid.UUID) (int, error) {
	if m.CountFunc == nil {
		panic("entryRepoMock.CountFunc: method is nil but entryRepo.Count was just called")
	}
	m.mu.Lock()
	m.calls.Count = append(m.calls.Count, userID)
	m.mu.Unlock()
	return m.CountFunc(ctx, userID)
}

func (m *entryRepoMock) CountCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Count
}

func (m *entryRepoMock) Delete(ctx context.Context, userID, entryID uuid.UUID) error {
	if m.DeleteFunc == nil {
		panic("entryRepoMock.DeleteFunc: method is nil but entryRepo.Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, struct{ UserID, EntryID uuid.UUID }{userID, entryID})
	m.mu.Unlock()
	return m.DeleteFunc(ctx, userID, entryID)
}

func (m *entryRepoMock) DeleteCalls() []struct{ UserID, EntryID uuid.UUID } {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}

// passthroughTx runs fn directly and counts invocations.
type passthroughTx struct {
	mu    sync.Mutex
	calls int
}

func (p *passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	p.mu.Lock()
	p.calls++
	p.mu.Unlock()
	return fn(ctx)
}
