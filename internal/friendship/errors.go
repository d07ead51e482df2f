package friendship

import "fmt"

// Kind classifies an operation failure for transport mapping.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindRateLimit
	KindInfrastructure
)

// Error carries a stable machine-readable code alongside the human message.
// Sentinel values below compare with errors.Is by code.
type Error struct {
	Kind    Kind
	Code    string
	Message string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrUserNotFound          = &Error{Kind: KindNotFound, Code: "user_not_found", Message: "user not found"}
	ErrTargetNotFound        = &Error{Kind: KindNotFound, Code: "target_not_found", Message: "user with the given email does not exist"}
	ErrSenderNotFound        = &Error{Kind: KindNotFound, Code: "sender_not_found", Message: "user with the given email does not exist"}
	ErrRequestNotFound       = &Error{Kind: KindNotFound, Code: "request_not_found", Message: "friend request not found"}
	ErrSelfRequest           = &Error{Kind: KindConflict, Code: "self_request", Message: "you cannot send a friend request to yourself"}
	ErrAlreadyFriends        = &Error{Kind: KindConflict, Code: "already_friends", Message: "you are already friends with this user"}
	ErrRequestAlreadySent    = &Error{Kind: KindConflict, Code: "request_already_sent", Message: "friend request already sent"}
	ErrReverseRequestPending = &Error{Kind: KindConflict, Code: "reverse_request_pending", Message: "this user has already sent you a friend request"}
	ErrDuplicatePair         = &Error{Kind: KindConflict, Code: "duplicate_pair", Message: "a friendship record already exists for this pair"}
	ErrRateLimited           = &Error{Kind: KindRateLimit, Code: "rate_limited", Message: "you cannot send more than 3 friend requests within a minute"}
	ErrInvalidQuery          = &Error{Kind: KindValidation, Code: "invalid_query", Message: "search query is required"}
	ErrEmailExists           = &Error{Kind: KindConflict, Code: "email_exists", Message: "email already exists"}
)

// infra wraps a persistence or limiter failure so callers can map it to a
// 5xx without leaking the underlying driver error to clients.
func infra(op string, err error) *Error {
	return &Error{
		Kind:    KindInfrastructure,
		Code:    "infrastructure",
		Message: op + " failed",
		cause:   err,
	}
}
