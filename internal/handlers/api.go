package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/colekern/mutuals/internal/auth"
	"github.com/colekern/mutuals/internal/friendship"
	"github.com/colekern/mutuals/internal/middleware"
	"github.com/colekern/mutuals/internal/models"
)

// AccountStore is the account-side persistence the HTTP layer needs beyond
// the friendship contracts.
type AccountStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	AuthenticateUser(ctx context.Context, email, password string) (*models.User, error)
	RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// API bundles the handler dependencies. Every friendship operation receives
// the authenticated actor explicitly, resolved once by RequireAuth.
type API struct {
	Accounts AccountStore
	Engine   *friendship.Engine
	Queries  *friendship.QueryService
	Logger   *logrus.Logger

	// HealthCheck pings the persistence layer; nil means always healthy.
	HealthCheck func(ctx context.Context) error
}

// Router mounts the full HTTP surface.
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logging(a.Logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Post("/auth/signup", a.SignupHandler)
	r.Post("/auth/login", a.LoginHandler)
	r.Get("/health", a.HealthHandler)

	r.Group(func(r chi.Router) {
		r.Use(a.RequireAuth)
		r.Post("/friends/requests/send", a.SendFriendRequestHandler)
		r.Post("/friends/requests/accept", a.AcceptFriendRequestHandler)
		r.Post("/friends/requests/reject", a.RejectFriendRequestHandler)
		r.Get("/friends", a.ListFriendsHandler)
		r.Get("/friends/requests/pending", a.ListPendingHandler)
		r.Get("/users/search", a.SearchUsersHandler)
	})

	return r
}

type ctxKey int

const actorKey ctxKey = iota

// RequireAuth authenticates the JWT from the auth_token cookie or the
// Authorization bearer header and stores the actor id in the context.
func (a *API) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, errorBody("missing auth token", "unauthorized"))
			return
		}

		userIDStr, err := auth.AuthenticateJWT(token)
		if err != nil {
			writeJSON(w, http.StatusForbidden, errorBody("invalid token", "forbidden"))
			return
		}
		actor, err := uuid.Parse(userIDStr)
		if err != nil {
			writeJSON(w, http.StatusForbidden, errorBody("invalid user id in token", "forbidden"))
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), actorKey, actor)))
	})
}

// Actor returns the authenticated user id placed by RequireAuth.
func Actor(ctx context.Context) uuid.UUID {
	actor, _ := ctx.Value(actorKey).(uuid.UUID)
	return actor
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorBody(message, code string) map[string]string {
	return map[string]string{"error": message, "code": code}
}

// writeError maps the friendship error taxonomy onto HTTP statuses:
// not-found kinds to 404, validation and conflicts to 400 (duplicate signup
// email to 409), rate limiting to 429, infrastructure to 500.
func (a *API) writeError(w http.ResponseWriter, err error) {
	var fe *friendship.Error
	if !errors.As(err, &fe) {
		a.Logger.WithError(err).Error("unclassified handler error")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error", "internal"))
		return
	}

	var status int
	switch fe.Kind {
	case friendship.KindNotFound:
		status = http.StatusNotFound
	case friendship.KindValidation:
		status = http.StatusBadRequest
	case friendship.KindConflict:
		status = http.StatusBadRequest
		if errors.Is(fe, friendship.ErrEmailExists) {
			status = http.StatusConflict
		}
	case friendship.KindRateLimit:
		status = http.StatusTooManyRequests
	default:
		a.Logger.WithError(err).Error("infrastructure error")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error", "internal"))
		return
	}
	writeJSON(w, status, errorBody(fe.Message, fe.Code))
}
