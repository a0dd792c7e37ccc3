package repository

import (
	"context"
	"errors"

	"soapee/backend/internal/verification/domain"
)

// ErrDuplicate is returned by Create when a verification already exists for
// the same (provider, provider id) pair.
var ErrDuplicate = errors.New("verification already exists for provider id")

// Repository defines persistence for verifications.
type Repository interface {
	GetByProviderID(ctx context.Context, provider domain.Provider, providerID string) (*domain.Verification, error)
	Create(ctx context.Context, v *domain.Verification) error
}
