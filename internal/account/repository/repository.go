package repository

import (
	"context"
	"time"

	"soapee/backend/internal/account/domain"
)

// Repository defines persistence for accounts.
type Repository interface {
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
	UpdateLastLoggedIn(ctx context.Context, id int64, at time.Time) error
}
