package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/colekern/mutuals/internal/auth"
	"github.com/colekern/mutuals/internal/models"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// SignupHandler registers a new account.
func (a *API) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid payload", "bad_payload"))
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("name, email and password are required", "missing_fields"))
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
	if err := a.Accounts.CreateUser(r.Context(), &user); err != nil {
		a.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"phone": user.Phone,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// LoginHandler verifies credentials and issues a JWT, returned in the body
// and as an auth_token cookie.
func (a *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid request payload", "bad_payload"))
		return
	}

	user, err := a.Accounts.AuthenticateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		a.Logger.WithError(err).Debug("failed login attempt")
		writeJSON(w, http.StatusForbidden, errorBody("invalid email or password", "bad_credentials"))
		return
	}

	if err := a.Accounts.RecordLogin(r.Context(), user.ID, time.Now()); err != nil {
		a.Logger.WithError(err).Warn("failed to record login time")
	}

	token, err := auth.CreateJWT(user.ID.String())
	if err != nil {
		a.Logger.WithError(err).Error("failed to create jwt")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error", "internal"))
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
		MaxAge:   auth.TokenExpireSeconds,
	})
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// HealthHandler pings the persistence layer.
func (a *API) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if a.HealthCheck != nil {
		if err := a.HealthCheck(r.Context()); err != nil {
			a.Logger.WithError(err).Error("health check failed")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"status":  "fail",
				"message": "database error",
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "service is healthy",
	})
}
