package handlers

import (
	"net/http"
	"strings"
)

// extractToken pulls the JWT from the auth_token cookie, falling back to an
// Authorization bearer header.
func extractToken(r *http.Request) string {
	if c, err := r.Cookie("auth_token"); err == nil && c.Value != "" {
		return c.Value
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
	}
	return ""
}
