package database

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/colekern/mutuals/internal/friendship"
	"github.com/colekern/mutuals/internal/models"
)

const friendshipColumns = `id, from_user, to_user, status, created_at, updated_at`

func scanFriendship(row pgx.Row) (*models.Friendship, error) {
	var f models.Friendship
	err := row.Scan(&f.ID, &f.FromUser, &f.ToUser, &f.Status, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// FindPair looks up the record for the unordered pair {a, b}, whichever
// direction it was created in.
func (s *Store) FindPair(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error) {
	q := `
	SELECT ` + friendshipColumns + `
	FROM friendships
	WHERE (from_user = $1 AND to_user = $2)
	   OR (from_user = $2 AND to_user = $1)
	`
	f, err := scanFriendship(s.pool.QueryRow(ctx, q, a, b))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return f, nil
}

// Create inserts a pending record. The unique index on the normalized pair
// (least, greatest) makes concurrent check-then-create safe: the loser gets
// a 23505, reported as ErrDuplicatePair.
func (s *Store) Create(ctx context.Context, f *models.Friendship) error {
	q := `
	INSERT INTO friendships (id, from_user, to_user, status, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, execErr := tx.Exec(ctx, q, f.ID, f.FromUser, f.ToUser, f.Status, f.CreatedAt, f.UpdatedAt)
		return execErr
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return friendship.ErrDuplicatePair
		}
		return err
	}
	return nil
}

// UpdateStatus applies the transition only while the record still holds the
// expected status, so concurrent accept/reject cannot both win.
func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.FriendshipStatus, at time.Time) (bool, error) {
	q := `
	UPDATE friendships
	SET status = $1, updated_at = $2
	WHERE id = $3 AND status = $4
	`
	var applied bool
	err := pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		ct, execErr := tx.Exec(ctx, q, to, at, id, from)
		if execErr != nil {
			return execErr
		}
		applied = ct.RowsAffected() > 0
		return nil
	})
	return applied, err
}

func (s *Store) ListAccepted(ctx context.Context, user uuid.UUID) ([]models.Friendship, error) {
	q := `
	SELECT ` + friendshipColumns + `
	FROM friendships
	WHERE (from_user = $1 OR to_user = $1) AND status = 'accepted'
	`
	return s.listFriendships(ctx, q, user)
}

func (s *Store) ListPendingReceivedBy(ctx context.Context, user uuid.UUID) ([]models.Friendship, error) {
	q := `
	SELECT ` + friendshipColumns + `
	FROM friendships
	WHERE to_user = $1 AND status = 'pending'
	`
	return s.listFriendships(ctx, q, user)
}

func (s *Store) listFriendships(ctx context.Context, q string, user uuid.UUID) ([]models.Friendship, error) {
	rows, err := s.pool.Query(ctx, q, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs []models.Friendship
	for rows.Next() {
		f, err := scanFriendship(rows)
		if err != nil {
			return nil, err
		}
		fs = append(fs, *f)
	}
	return fs, rows.Err()
}

func (s *Store) CountRecentFrom(ctx context.Context, user uuid.UUID, since time.Time) (int, error) {
	q := `SELECT count(*) FROM friendships WHERE from_user = $1 AND created_at >= $2`
	var n int
	if err := s.pool.QueryRow(ctx, q, user, since).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
