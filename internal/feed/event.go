// Package feed publishes account lifecycle events to the activity feed
// pipeline. Publishing is best-effort: the identity outcome never depends on
// feed delivery.
package feed

import (
	"time"

	accountdomain "soapee/backend/internal/account/domain"
)

// AccountCreatedEvent is emitted once per successful signup. The meta block
// mirrors what the feed renderer needs to show a "new member" entry.
type AccountCreatedEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	Account   struct {
		ID       int64  `json:"id"`
		Name     string `json:"name"`
		ImageURL string `json:"image_url,omitempty"`
	} `json:"account"`
}

// EventTypeAccountCreated is the type tag on AccountCreatedEvent.
const EventTypeAccountCreated = "account.created"

// NewAccountCreatedEvent builds the event for the given account.
func NewAccountCreatedEvent(eventID string, a *accountdomain.Account) *AccountCreatedEvent {
	e := &AccountCreatedEvent{
		EventID:   eventID,
		Type:      EventTypeAccountCreated,
		CreatedAt: time.Now().UTC(),
	}
	e.Account.ID = a.ID
	e.Account.Name = a.Name
	e.Account.ImageURL = a.ImageURL
	return e
}
