package ratelimit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/colekern/mutuals/internal/friendship"
)

// StoreCounter rates a sender by counting the records they actually created
// inside the trailing span. It matches the original point-in-time count query
// and serves as the fallback when no Redis address is configured; the store's
// pair uniqueness still protects the create itself.
type StoreCounter struct {
	store friendship.Store
	limit int
	span  time.Duration
}

func NewStoreCounter(store friendship.Store, limit int, span time.Duration) *StoreCounter {
	return &StoreCounter{store: store, limit: limit, span: span}
}

func (c *StoreCounter) Allow(ctx context.Context, user uuid.UUID, now time.Time) (bool, error) {
	n, err := c.store.CountRecentFrom(ctx, user, now.Add(-c.span))
	if err != nil {
		return false, err
	}
	return n < c.limit, nil
}
