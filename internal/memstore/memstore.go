// Package memstore holds an in-memory implementation of the friendship
// persistence contracts. It backs the test suites and can run the server
// without Postgres for local development.
package memstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/colekern/mutuals/internal/auth"
	"github.com/colekern/mutuals/internal/friendship"
	"github.com/colekern/mutuals/internal/models"
)

type pairKey struct {
	lo, hi uuid.UUID
}

func keyFor(a, b uuid.UUID) pairKey {
	if strings.Compare(a.String(), b.String()) < 0 {
		return pairKey{lo: a, hi: b}
	}
	return pairKey{lo: b, hi: a}
}

// Store keeps users and friendship records in maps under one mutex, so the
// check-then-create and read-modify-write sequences are serialized the same
// way the SQL store's constraints serialize them.
type Store struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*models.User
	byEmail     map[string]uuid.UUID
	friendships map[pairKey]*models.Friendship
	order       []pairKey // insertion order for deterministic listings
}

func New() *Store {
	return &Store{
		users:       make(map[uuid.UUID]*models.User),
		byEmail:     make(map[string]uuid.UUID),
		friendships: make(map[pairKey]*models.Friendship),
	}
}

// AddUser registers a user identity. Email duplicates (case-insensitive)
// report ErrEmailExists like the SQL unique index does.
func (s *Store) AddUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := strings.ToLower(u.Email)
	if _, exists := s.byEmail[email]; exists {
		return friendship.ErrEmailExists
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	s.users[cp.ID] = &cp
	s.byEmail[email] = cp.ID
	return nil
}

// CreateUser hashes the password, stamps timestamps, and registers the user.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	hash, err := auth.CreateHash(u.Password, auth.Params)
	if err != nil {
		return err
	}
	u.Password = hash
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.AddUser(u)
}

// AuthenticateUser verifies the email/password pair.
func (s *Store) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	match, err := auth.ComparePasswordAndHash(password, u.Password)
	if err != nil || !match {
		return nil, errors.New("invalid credentials")
	}
	return u, nil
}

func (s *Store) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return friendship.ErrUserNotFound
	}
	t := at
	u.LastLogin = &t
	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, friendship.ErrUserNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, friendship.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query = strings.ToLower(query)
	var matches []models.User
	for _, u := range s.users {
		if strings.ToLower(u.Email) == query || strings.Contains(strings.ToLower(u.Name), query) {
			matches = append(matches, *u)
			if len(matches) >= limit {
				break
			}
		}
	}
	return matches, nil
}

func (s *Store) FindPair(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, ok := s.friendships[keyFor(a, b)]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (s *Store) Create(ctx context.Context, f *models.Friendship) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := keyFor(f.FromUser, f.ToUser)
	if _, exists := s.friendships[key]; exists {
		return friendship.ErrDuplicatePair
	}
	cp := *f
	s.friendships[key] = &cp
	s.order = append(s.order, key)
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.FriendshipStatus, at time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.friendships {
		if f.ID == id {
			if f.Status != from {
				return false, nil
			}
			f.Status = to
			f.UpdatedAt = at
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) ListAccepted(ctx context.Context, user uuid.UUID) ([]models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Friendship
	for _, key := range s.order {
		f := s.friendships[key]
		if f.Status == models.StatusAccepted && (f.FromUser == user || f.ToUser == user) {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (s *Store) ListPendingReceivedBy(ctx context.Context, user uuid.UUID) ([]models.Friendship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Friendship
	for _, key := range s.order {
		f := s.friendships[key]
		if f.Status == models.StatusPending && f.ToUser == user {
			out = append(out, *f)
		}
	}
	return out, nil
}

func (s *Store) CountRecentFrom(ctx context.Context, user uuid.UUID, since time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, f := range s.friendships {
		if f.FromUser == user && !f.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}
