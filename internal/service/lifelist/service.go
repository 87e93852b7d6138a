// Package lifelist records the species a user has spotted.
package lifelist

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/wildlife-backend/internal/config"
	"github.com/heartmarshall/wildlife-backend/internal/domain"
)

const DefaultLimit = 50

type entryRepo interface {
	Create(ctx context.Context, e *domain.LifelistEntry) (*domain.LifelistEntry, error)
	GetByID(ctx context.Context, userID, entryID uuid.UUID) (*domain.LifelistEntry, error)
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.LifelistEntry, int, error)
	Count(ctx context.Context, userID uuid.UUID) (int, error)
	Delete(ctx context.Context, userID, entryID uuid.UUID) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides lifelist operations for the user in the context.
type Service struct {
	log        *slog.Logger
	entries    entryRepo
	tx         txManager
	maxEntries int
	now        func() time.Time
}

// NewService creates a lifelist service.
func NewService(
	logger *slog.Logger,
	entries entryRepo,
	tx txManager,
	cfg config.LifelistConfig,
) *Service {
	return &Service{
		log:        logger.With("service", "lifelist"),
		entries:    entries,
		tx:         tx,
		maxEntries: cfg.MaxEntriesPerUser,
		now:        time.Now,
	}
}
