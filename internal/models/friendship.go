package models

import (
	"time"

	"github.com/google/uuid"
)

type FriendshipStatus string

const (
	StatusPending  FriendshipStatus = "pending"
	StatusAccepted FriendshipStatus = "accepted"
	StatusRejected FriendshipStatus = "rejected"
)

// Friendship is a directional request record: FromUser asked, ToUser answers.
// At most one record exists per unordered user pair, regardless of direction.
type Friendship struct {
	ID        uuid.UUID        `json:"id"`
	FromUser  uuid.UUID        `json:"from_user"`
	ToUser    uuid.UUID        `json:"to_user"`
	Status    FriendshipStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// Other returns the counterpart of userID in the record.
func (f *Friendship) Other(userID uuid.UUID) uuid.UUID {
	if f.FromUser == userID {
		return f.ToUser
	}
	return f.FromUser
}

// FriendSummary is the public projection of a user in friend lists and search results.
type FriendSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// PendingRequest is the projection of an incoming, not-yet-answered request.
type PendingRequest struct {
	RequestID   uuid.UUID `json:"request_id"`
	SenderID    uuid.UUID `json:"sender_id"`
	SenderName  string    `json:"sender_name"`
	SenderEmail string    `json:"sender_email"`
	Timestamp   time.Time `json:"timestamp"`
}
