package friendship

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/colekern/mutuals/internal/models"
)

// SendWindow and SendLimit bound outbound requests per sender: at most
// SendLimit sends per rolling SendWindow.
const (
	SendWindow = time.Minute
	SendLimit  = 3
)

// Engine applies friendship state transitions:
//
//	no relation -> pending -> accepted | rejected
//
// Accepted and rejected are terminal; a pair record is created once and never
// deleted, so a rejected pair blocks any later re-request in either direction.
type Engine struct {
	store   Store
	users   Directory
	limiter Limiter
	now     func() time.Time
}

func NewEngine(store Store, users Directory, limiter Limiter) *Engine {
	return &Engine{
		store:   store,
		users:   users,
		limiter: limiter,
		now:     time.Now,
	}
}

// WithClock overrides the engine's time source.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// SendRequest creates a pending request from actor to the user owning
// targetEmail. The duplicate checks run before the rate check, so only sends
// that would actually create a record consume window slots; the store's pair
// uniqueness backstops the check-then-create race between concurrent sends.
func (e *Engine) SendRequest(ctx context.Context, actor uuid.UUID, targetEmail string) (*models.Friendship, error) {
	target, err := e.users.FindByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrTargetNotFound
		}
		return nil, infra("resolving receiver", err)
	}

	if target.ID == actor {
		return nil, ErrSelfRequest
	}

	existing, err := e.store.FindPair(ctx, actor, target.ID)
	if err != nil {
		return nil, infra("looking up pair record", err)
	}
	if existing != nil {
		switch {
		case existing.Status == models.StatusAccepted:
			return nil, ErrAlreadyFriends
		case existing.FromUser == actor:
			return nil, ErrRequestAlreadySent
		default:
			return nil, ErrReverseRequestPending
		}
	}

	now := e.now()
	ok, err := e.limiter.Allow(ctx, actor, now)
	if err != nil {
		return nil, infra("checking send rate", err)
	}
	if !ok {
		return nil, ErrRateLimited
	}

	rec := &models.Friendship{
		ID:        uuid.New(),
		FromUser:  actor,
		ToUser:    target.ID,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.store.Create(ctx, rec); err != nil {
		if errors.Is(err, ErrDuplicatePair) {
			return nil, ErrDuplicatePair
		}
		return nil, infra("creating friend request", err)
	}
	return rec, nil
}

// AcceptRequest transitions the pending request from the sender owning
// senderEmail to actor into accepted.
func (e *Engine) AcceptRequest(ctx context.Context, actor uuid.UUID, senderEmail string) error {
	return e.answer(ctx, actor, senderEmail, models.StatusAccepted)
}

// RejectRequest transitions the pending request into rejected. The record
// stays in place, so the pair cannot be re-requested afterwards.
func (e *Engine) RejectRequest(ctx context.Context, actor uuid.UUID, senderEmail string) error {
	return e.answer(ctx, actor, senderEmail, models.StatusRejected)
}

func (e *Engine) answer(ctx context.Context, actor uuid.UUID, senderEmail string, to models.FriendshipStatus) error {
	sender, err := e.users.FindByEmail(ctx, senderEmail)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrSenderNotFound
		}
		return infra("resolving sender", err)
	}

	rec, err := e.store.FindPair(ctx, sender.ID, actor)
	if err != nil {
		return infra("looking up pair record", err)
	}
	if rec == nil || rec.Status != models.StatusPending || rec.FromUser != sender.ID || rec.ToUser != actor {
		return ErrRequestNotFound
	}

	// Conditional on the record still being pending at write time, so a
	// concurrent accept and reject cannot both apply.
	applied, err := e.store.UpdateStatus(ctx, rec.ID, models.StatusPending, to, e.now())
	if err != nil {
		return infra("updating request status", err)
	}
	if !applied {
		return ErrRequestNotFound
	}
	return nil
}
