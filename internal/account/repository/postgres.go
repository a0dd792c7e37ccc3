package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"soapee/backend/internal/account/domain"
	"soapee/backend/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns an account repository over the given handle,
// which may be a *sql.DB or a transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByID returns the account for id, or nil if not found.
// It returns an error only for database failures, not for missing rows.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT id, name, COALESCE(email, ''), COALESCE(image_url, ''),
	                 COALESCE(last_logged_in, 'epoch'::timestamptz), created_at, updated_at
	          FROM users
	          WHERE id = $1`

	a := &domain.Account{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.Name, &a.Email, &a.ImageURL, &a.LastLoggedIn, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// Create persists the account and assigns its ID from the database sequence.
func (r *PostgresRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO users (name, email, image_url, last_logged_in, created_at, updated_at)
	          VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $5)
	          RETURNING id`

	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = a.CreatedAt
	err := r.db.QueryRowContext(ctx, query,
		a.Name, a.Email, a.ImageURL, a.LastLoggedIn, a.CreatedAt).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// UpdateLastLoggedIn sets last_logged_in for the account with the given id.
func (r *PostgresRepository) UpdateLastLoggedIn(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE users SET last_logged_in = $2, updated_at = $2 WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id, at); err != nil {
		return fmt.Errorf("update last_logged_in: %w", err)
	}
	return nil
}
