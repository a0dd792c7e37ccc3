package domain

import "time"

// Verification links an account to one authentication provider's identifier
// and carries the secret hash for that provider. At most one verification
// exists per (provider, provider id) pair; the store enforces uniqueness.
type Verification struct {
	ID         int64
	AccountID  int64
	Provider   Provider
	ProviderID string // the username for the local provider
	Hash       string
	CreatedAt  time.Time
}

// Provider is the authentication method namespace.
type Provider string

const (
	// ProviderLocal is password-based auth against our own store.
	ProviderLocal Provider = "local"
)
