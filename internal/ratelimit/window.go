// Package ratelimit bounds outbound friend requests per sender over a
// rolling time window. Three implementations share the same contract: a
// Redis sliding window for multi-process deployments, an in-process window,
// and a store-backed count that reproduces the original created-rows check.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Window is an in-process sliding window: it remembers send timestamps per
// user and admits a send only while fewer than limit sends fall inside the
// trailing span. Allow reserves the slot it admits.
type Window struct {
	mu    sync.Mutex
	limit int
	span  time.Duration
	sent  map[uuid.UUID][]time.Time
}

func NewWindow(limit int, span time.Duration) *Window {
	return &Window{
		limit: limit,
		span:  span,
		sent:  make(map[uuid.UUID][]time.Time),
	}
}

func (w *Window) Allow(ctx context.Context, user uuid.UUID, now time.Time) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cutoff := now.Add(-w.span)
	kept := w.sent[user][:0]
	for _, t := range w.sent[user] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= w.limit {
		w.sent[user] = kept
		return false, nil
	}
	w.sent[user] = append(kept, now)
	return true, nil
}
