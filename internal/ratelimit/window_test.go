package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestWindowRolls(t *testing.T) {
	w := NewWindow(3, time.Minute)
	user := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		ok, err := w.Allow(context.Background(), user, now.Add(time.Duration(i)*time.Second))
		if err != nil || !ok {
			t.Fatalf("send %d should be admitted, got ok=%v err=%v", i, ok, err)
		}
	}

	ok, err := w.Allow(context.Background(), user, now.Add(3*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("4th send inside the window should be denied")
	}

	// the first send ages out after a minute
	ok, err = w.Allow(context.Background(), user, now.Add(61*time.Second))
	if err != nil || !ok {
		t.Fatalf("send after window should be admitted, got ok=%v err=%v", ok, err)
	}
}

func TestWindowDeniedAttemptHoldsNoSlot(t *testing.T) {
	w := NewWindow(1, time.Minute)
	user := uuid.New()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if ok, _ := w.Allow(context.Background(), user, now); !ok {
		t.Fatalf("first send should be admitted")
	}
	for i := 0; i < 5; i++ {
		if ok, _ := w.Allow(context.Background(), user, now.Add(time.Second)); ok {
			t.Fatalf("send over limit should be denied")
		}
	}
	// denied attempts above must not have extended the window
	if ok, _ := w.Allow(context.Background(), user, now.Add(61*time.Second)); !ok {
		t.Fatalf("send after window should be admitted")
	}
}

func TestWindowIsPerUser(t *testing.T) {
	w := NewWindow(1, time.Minute)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	a, b := uuid.New(), uuid.New()
	if ok, _ := w.Allow(context.Background(), a, now); !ok {
		t.Fatalf("first send for a should be admitted")
	}
	if ok, _ := w.Allow(context.Background(), b, now); !ok {
		t.Fatalf("first send for b should be admitted")
	}
	if ok, _ := w.Allow(context.Background(), a, now); ok {
		t.Fatalf("second send for a should be denied")
	}
}
