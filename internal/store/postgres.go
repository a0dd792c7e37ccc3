// Package store assembles the Postgres-backed credential store consumed by
// the identity resolver.
package store

import (
	"context"
	"database/sql"

	accountrepo "soapee/backend/internal/account/repository"
	"soapee/backend/internal/dbx"
	"soapee/backend/internal/identity/service"
	verificationrepo "soapee/backend/internal/verification/repository"
)

// Postgres implements service.Store over a *sql.DB. A transaction-scoped
// copy shares the same repositories bound to the transaction handle, so
// InTx gives signup's two inserts a single commit point.
type Postgres struct {
	db *sql.DB
	h  dbx.DBTX
}

// NewPostgres returns a credential store over the given database.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db, h: db}
}

func (s *Postgres) Accounts() service.AccountRepo {
	return accountrepo.NewPostgresRepository(s.h)
}

func (s *Postgres) Verifications() service.VerificationRepo {
	return verificationrepo.NewPostgresRepository(s.h)
}

// InTx runs fn against a transaction-scoped view of the store. Nested calls
// reuse the surrounding transaction.
func (s *Postgres) InTx(ctx context.Context, fn func(service.Store) error) error {
	if _, isDB := s.h.(*sql.DB); !isDB {
		return fn(s)
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(&Postgres{db: s.db, h: tx})
	})
}

var _ service.Store = (*Postgres)(nil)
