package friendship

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/colekern/mutuals/internal/models"
)

// MaxSearchResults caps SearchUsers output.
const MaxSearchResults = 10

// QueryService renders read-side projections of the friendship graph.
type QueryService struct {
	store Store
	users Directory
}

func NewQueryService(store Store, users Directory) *QueryService {
	return &QueryService{store: store, users: users}
}

// ListFriends returns the accepted counterparts of user, in store iteration
// order. Direction is irrelevant once accepted: the other side of each record
// is resolved whichever way the original request ran.
func (s *QueryService) ListFriends(ctx context.Context, user uuid.UUID) ([]models.FriendSummary, error) {
	recs, err := s.store.ListAccepted(ctx, user)
	if err != nil {
		return nil, infra("listing friends", err)
	}

	friends := make([]models.FriendSummary, 0, len(recs))
	for _, rec := range recs {
		other, err := s.users.FindByID(ctx, rec.Other(user))
		if err != nil {
			return nil, infra("resolving friend identity", err)
		}
		friends = append(friends, other.Summary())
	}
	return friends, nil
}

// ListPending returns requests addressed to user that are still unanswered.
func (s *QueryService) ListPending(ctx context.Context, user uuid.UUID) ([]models.PendingRequest, error) {
	recs, err := s.store.ListPendingReceivedBy(ctx, user)
	if err != nil {
		return nil, infra("listing pending requests", err)
	}

	pending := make([]models.PendingRequest, 0, len(recs))
	for _, rec := range recs {
		sender, err := s.users.FindByID(ctx, rec.FromUser)
		if err != nil {
			return nil, infra("resolving sender identity", err)
		}
		pending = append(pending, models.PendingRequest{
			RequestID:   rec.ID,
			SenderID:    sender.ID,
			SenderName:  sender.Name,
			SenderEmail: sender.Email,
			Timestamp:   rec.CreatedAt,
		})
	}
	return pending, nil
}

// SearchUsers matches query against exact email or name substring, both
// case-insensitive, capped at MaxSearchResults.
func (s *QueryService) SearchUsers(ctx context.Context, query string) ([]models.FriendSummary, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrInvalidQuery
	}

	users, err := s.users.Search(ctx, query, MaxSearchResults)
	if err != nil {
		return nil, infra("searching users", err)
	}

	results := make([]models.FriendSummary, 0, len(users))
	for i := range users {
		results = append(results, users[i].Summary())
	}
	return results, nil
}
