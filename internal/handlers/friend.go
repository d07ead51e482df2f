package handlers

import (
	"encoding/json"
	"net/http"
)

type sendFriendRequest struct {
	ReceiverEmail string `json:"receiver_email"`
}

type answerFriendRequest struct {
	SenderEmail string `json:"sender_email"`
}

// SendFriendRequestHandler creates a pending friend request from the
// authenticated actor to the user owning receiver_email.
func (a *API) SendFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req sendFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid payload", "bad_payload"))
		return
	}
	if req.ReceiverEmail == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("receiver email is required", "missing_fields"))
		return
	}

	rec, err := a.Engine.SendRequest(r.Context(), Actor(r.Context()), req.ReceiverEmail)
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// AcceptFriendRequestHandler accepts the pending request sent to the actor
// by the user owning sender_email.
func (a *API) AcceptFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req answerFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid payload", "bad_payload"))
		return
	}
	if req.SenderEmail == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("sender email is required", "missing_fields"))
		return
	}

	if err := a.Engine.AcceptRequest(r.Context(), Actor(r.Context()), req.SenderEmail); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "friend request accepted"})
}

// RejectFriendRequestHandler rejects the pending request. The record stays,
// so the pair cannot be re-requested.
func (a *API) RejectFriendRequestHandler(w http.ResponseWriter, r *http.Request) {
	var req answerFriendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid payload", "bad_payload"))
		return
	}
	if req.SenderEmail == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("sender email is required", "missing_fields"))
		return
	}

	if err := a.Engine.RejectRequest(r.Context(), Actor(r.Context()), req.SenderEmail); err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "friend request rejected"})
}

// ListFriendsHandler returns the actor's accepted friends.
func (a *API) ListFriendsHandler(w http.ResponseWriter, r *http.Request) {
	friends, err := a.Queries.ListFriends(r.Context(), Actor(r.Context()))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, friends)
}

// ListPendingHandler returns requests awaiting the actor's answer.
func (a *API) ListPendingHandler(w http.ResponseWriter, r *http.Request) {
	pending, err := a.Queries.ListPending(r.Context(), Actor(r.Context()))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pending)
}

// SearchUsersHandler matches ?search= against exact email or name substring.
func (a *API) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	results, err := a.Queries.SearchUsers(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		a.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}
