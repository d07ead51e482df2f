package friendship

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/colekern/mutuals/internal/models"
)

// Store is the persistence contract for friendship records. Implementations
// must enforce at most one record per unordered user pair at create time and
// must apply status updates conditionally, so that concurrent sends and
// concurrent accept/reject calls cannot both win.
type Store interface {
	// FindPair returns the record for the unordered pair {a, b} in either
	// direction, or (nil, nil) when none exists.
	FindPair(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error)

	// Create inserts a new record. It returns ErrDuplicatePair when a record
	// for the pair already exists, regardless of direction.
	Create(ctx context.Context, f *models.Friendship) error

	// UpdateStatus transitions the record's status from "from" to "to" and
	// stamps UpdatedAt. It reports false when the record no longer holds the
	// expected status at write time.
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.FriendshipStatus, at time.Time) (bool, error)

	// ListAccepted returns accepted records with user on either side.
	ListAccepted(ctx context.Context, user uuid.UUID) ([]models.Friendship, error)

	// ListPendingReceivedBy returns pending records addressed to user.
	ListPendingReceivedBy(ctx context.Context, user uuid.UUID) ([]models.Friendship, error)

	// CountRecentFrom counts records sent by user with CreatedAt >= since.
	CountRecentFrom(ctx context.Context, user uuid.UUID, since time.Time) (int, error)
}

// Directory resolves user identities. Lookups are side-effect-free; email
// matching is case-insensitive exact.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// Search matches lowercased query against exact email or name substring,
	// returning at most limit users.
	Search(ctx context.Context, query string, limit int) ([]models.User, error)
}

// Limiter gates outbound friend requests per sender over a rolling window.
// Allow reserves a slot when under the limit.
type Limiter interface {
	Allow(ctx context.Context, user uuid.UUID, now time.Time) (bool, error)
}
