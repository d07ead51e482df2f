package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/colekern/mutuals/internal/auth"
	"github.com/colekern/mutuals/internal/friendship"
	"github.com/colekern/mutuals/internal/models"
)

const userColumns = `id, name, email, phone, password, last_login, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Email, &u.Phone, &u.Password,
		&u.LastLogin, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, friendship.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser hashes the password and inserts the user. Duplicate emails
// surface as ErrEmailExists via the unique index on lower(email).
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}

	hash, err := auth.CreateHash(user.Password, auth.Params)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hash

	q := `INSERT INTO users (id, name, email, phone, password)
	      VALUES ($1, $2, $3, $4, $5)
	      RETURNING created_at, updated_at`

	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, q,
			user.ID, user.Name, user.Email, user.Phone, user.Password,
		).Scan(&user.CreatedAt, &user.UpdatedAt)
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return friendship.ErrEmailExists
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	return scanUser(s.pool.QueryRow(ctx, q, email))
}

func (s *Store) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	q := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, q, id))
}

// Search matches exact email or name substring, both case-insensitive.
func (s *Store) Search(ctx context.Context, query string, limit int) ([]models.User, error) {
	q := `
	SELECT ` + userColumns + `
	FROM users
	WHERE lower(email) = lower($1) OR name ILIKE '%' || $1 || '%'
	LIMIT $2
	`
	rows, err := s.pool.Query(ctx, q, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

// AuthenticateUser verifies the email/password pair and returns the user.
func (s *Store) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("user not found or db error: %w", err)
	}

	match, err := auth.ComparePasswordAndHash(password, user.Password)
	if err != nil || !match {
		return nil, errors.New("invalid credentials")
	}
	return user, nil
}

// RecordLogin stamps last_login, mirroring the login flow's bookkeeping.
func (s *Store) RecordLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	q := `UPDATE users SET last_login = $1 WHERE id = $2`
	return pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, q, at, id)
		return err
	})
}
