package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupAndLogin(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.Router()

	w := doJSON(t, router, "POST", "/auth/signup", "", map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"phone":    "+15550100",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, "body=%s", w.Body.String())

	var created map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "alice@example.com", created["email"])
	assert.NotEmpty(t, created["id"])
	assert.Empty(t, created["password"])

	w = doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, "body=%s", w.Body.String())

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.NotEmpty(t, login.Token)

	// the issued token works on an authenticated route
	w = doJSON(t, router, "GET", "/friends", login.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.Router()

	payload := map[string]string{
		"name":     "Alice",
		"email":    "alice@example.com",
		"password": "hunter2",
	}
	w := doJSON(t, router, "POST", "/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, "POST", "/auth/signup", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	// email uniqueness is case-insensitive
	payload["email"] = "ALICE@example.com"
	w = doJSON(t, router, "POST", "/auth/signup", "", payload)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSignupValidation(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.Router()

	w := doJSON(t, router, "POST", "/auth/signup", "", map[string]string{
		"name": "No Email", "password": "hunter2",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginBadCredentials(t *testing.T) {
	api, store := newTestAPI(t)
	router := api.Router()
	seedUser(t, store, "Alice", "alice@example.com")

	w := doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, router, "POST", "/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "password",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHealthHandler(t *testing.T) {
	api, _ := newTestAPI(t)
	router := api.Router()

	w := doJSON(t, router, "GET", "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "success", body["status"])
}
