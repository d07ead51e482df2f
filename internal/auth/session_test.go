package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestJWTRoundTrip(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	userID := uuid.New().String()
	token, err := CreateJWT(userID)
	if err != nil {
		t.Fatalf("CreateJWT failed: %v", err)
	}

	sub, err := AuthenticateJWT(token)
	if err != nil {
		t.Fatalf("AuthenticateJWT failed: %v", err)
	}
	if sub != userID {
		t.Fatalf("expected sub %s, got %s", userID, sub)
	}
}

func TestAuthenticateJWTRejectsGarbage(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := AuthenticateJWT("not.a.token"); err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthenticateJWTRejectsForeignKey(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	token, err := CreateJWT(uuid.New().String())
	if err != nil {
		t.Fatalf("CreateJWT failed: %v", err)
	}

	// rotate the key pair; previously issued tokens must stop verifying
	if err := Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if _, err := AuthenticateJWT(token); err == nil {
		t.Fatalf("expected error for token signed with a rotated key")
	}
}
