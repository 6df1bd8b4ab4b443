package repository

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// SnapshotCache stores serialized values under a key with a TTL.
type SnapshotCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type cachedTicketRepository struct {
	inner  TicketRepository
	cache  SnapshotCache
	key    string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTicketRepository wraps inner with a read-through snapshot cache.
// Cache failures are logged and the inner repository is used instead.
func NewCachedTicketRepository(inner TicketRepository, cache SnapshotCache, key string, ttl time.Duration, logger *zap.Logger) TicketRepository {
	if cache == nil || ttl <= 0 {
		return inner
	}
	return &cachedTicketRepository{inner: inner, cache: cache, key: key, ttl: ttl, logger: logger}
}

func (r *cachedTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	var cached []domain.Ticket
	hit, err := r.cache.Get(ctx, r.key, &cached)
	if err != nil {
		r.logger.Warn("ticket snapshot read failed", zap.String("key", r.key), zap.Error(err))
	} else if hit {
		r.logger.Debug("ticket snapshot hit", zap.String("key", r.key), zap.Int("tickets", len(cached)))
		return cached, nil
	}

	tickets, err := r.inner.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := r.cache.Set(ctx, r.key, tickets, r.ttl); err != nil {
		r.logger.Warn("ticket snapshot write failed", zap.String("key", r.key), zap.Error(err))
	}
	return tickets, nil
}
