package domain

import (
	"errors"
	"time"
)

// Account is the core member entity. IDs are assigned by the store on create.
type Account struct {
	ID           int64
	Name         string
	Email        string // optional
	ImageURL     string // optional
	LastLoggedIn time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Validate validates the account for persistence. Returns an error describing
// the first validation failure.
func (a *Account) Validate() error {
	if a.Name == "" {
		return errors.New("name is required")
	}
	return nil
}
