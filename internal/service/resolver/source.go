package resolver

import (
	"context"

	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

// SourceRequest is what a Source needs to produce candidate species.
type SourceRequest struct {
	Point    *domain.Point
	RadiusKm float64
	Limit    int
}

// Source produces candidate species for a resolution.
type Source interface {
	Fetch(ctx context.Context, req SourceRequest) ([]domain.Species, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, req SourceRequest) ([]domain.Species, error)

func (f SourceFunc) Fetch(ctx context.Context, req SourceRequest) ([]domain.Species, error) {
	return f(ctx, req)
}

type catalogReader interface {
	ReadAll(ctx context.Context) ([]domain.Species, error)
}

// CatalogSource serves the whole cached catalog regardless of the request.
type CatalogSource struct {
	repo catalogReader
}

// NewCatalogSource wraps a catalog reader.
func NewCatalogSource(repo catalogReader) *CatalogSource {
	return &CatalogSource{repo: repo}
}

func (c *CatalogSource) Fetch(ctx context.Context, _ SourceRequest) ([]domain.Species, error) {
	return c.repo.ReadAll(ctx)
}

type observationClient interface {
	FetchNearby(ctx context.Context, p domain.Point, radiusKm float64, perPage int) ([]domain.Species, error)
}

// BridgeSource serves live observations around the request point. Requests
// without a point produce nothing and never reach the network.
type BridgeSource struct {
	client observationClient
}

// NewBridgeSource wraps an observation client.
func NewBridgeSource(client observationClient) *BridgeSource {
	return &BridgeSource{client: client}
}

func (b *BridgeSource) Fetch(ctx context.Context, req SourceRequest) ([]domain.Species, error) {
	if req.Point == nil {
		return nil, nil
	}
	return b.client.FetchNearby(ctx, *req.Point, req.RadiusKm, req.Limit)
}
