package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"soapee/backend/internal/dbx"
	"soapee/backend/internal/verification/domain"
)

// pgUniqueViolation is the Postgres error code for unique-constraint violations.
const pgUniqueViolation = "23505"

type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository returns a verification repository over the given
// handle, which may be a *sql.DB or a transaction.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// GetByProviderID returns the verification for the given provider and
// provider id, or nil if not found. The lookup is an exact, case-sensitive
// match on provider_id as stored. It returns an error only for database
// failures, not for missing rows.
func (r *PostgresRepository) GetByProviderID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Verification, error) {
	query := `SELECT id, user_id, provider_name, provider_id, hash, created_at
	          FROM verifications
	          WHERE provider_name = $1 AND provider_id = $2`

	v := &domain.Verification{}
	err := r.db.QueryRowContext(ctx, query, string(provider), providerID).Scan(
		&v.ID, &v.AccountID, &v.Provider, &v.ProviderID, &v.Hash, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get verification: %w", err)
	}
	return v, nil
}

// Create persists the verification and assigns its ID from the database
// sequence. Returns ErrDuplicate when another verification already holds the
// same (provider, provider id) pair.
func (r *PostgresRepository) Create(ctx context.Context, v *domain.Verification) error {
	query := `INSERT INTO verifications (user_id, provider_name, provider_id, hash, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING id`

	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	err := r.db.QueryRowContext(ctx, query,
		v.AccountID, string(v.Provider), v.ProviderID, v.Hash, v.CreatedAt).Scan(&v.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create verification: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
