package resolver

import (
	"context"
	"sync"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

var _ Source = &SourceMock{}

type SourceMock struct {
	FetchFunc func(ctx context.Context, req SourceRequest) ([]domain.Species, error)

	calls struct {
		Fetch []struct {
			Ctx context.Context
			Req SourceRequest
		}
	}
	lockFetch sync.RWMutex
}

func (mock *SourceMock) Fetch(ctx context.Context, req SourceRequest) ([]domain.Species, error) {
	if mock.FetchFunc == nil {
		panic("SourceMock.FetchFunc: method is nil but Source.Fetch was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req SourceRequest
	}{Ctx: ctx, Req: req}
	mock.lockFetch.Lock()
	mock.calls.Fetch = append(mock.calls.Fetch, callInfo)
	mock.lockFetch.Unlock()
	return mock.FetchFunc(ctx, req)
}

func (mock *SourceMock) FetchCalls() []struct {
	Ctx context.Context
	Req SourceRequest
} {
	mock.lockFetch.RLock()
	calls := mock.calls.Fetch
	mock.lockFetch.RUnlock()
	return calls
}
