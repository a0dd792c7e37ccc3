package feed

import (
	"context"
	"encoding/json"
	"testing"

	accountdomain "soapee/backend/internal/account/domain"
)

func TestNewAccountCreatedEvent(t *testing.T) {
	a := &accountdomain.Account{ID: 7, Name: "alice", ImageURL: "http://img/alice.png"}
	e := NewAccountCreatedEvent("evt-1", a)

	if e.Type != EventTypeAccountCreated {
		t.Errorf("Type = %q, want %q", e.Type, EventTypeAccountCreated)
	}
	if e.EventID != "evt-1" {
		t.Errorf("EventID = %q", e.EventID)
	}
	if e.Account.ID != 7 || e.Account.Name != "alice" || e.Account.ImageURL != "http://img/alice.png" {
		t.Errorf("Account block = %+v", e.Account)
	}
	if e.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestAccountCreatedEvent_JSONShape(t *testing.T) {
	a := &accountdomain.Account{ID: 7, Name: "alice"}
	raw, err := json.Marshal(NewAccountCreatedEvent("evt-1", a))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["type"] != "account.created" {
		t.Errorf("type = %v", decoded["type"])
	}
	acct, ok := decoded["account"].(map[string]any)
	if !ok {
		t.Fatalf("account block missing: %v", decoded)
	}
	if _, present := acct["image_url"]; present {
		t.Error("empty image_url should be omitted")
	}
}

func TestNewKafkaPublisher_Disabled(t *testing.T) {
	p, err := NewKafkaPublisher(nil, "soapee-feed")
	if err != nil || p != nil {
		t.Errorf("no brokers should yield (nil, nil), got (%v, %v)", p, err)
	}
	p, err = NewKafkaPublisher([]string{"localhost:9092"}, "")
	if err != nil || p != nil {
		t.Errorf("no topic should yield (nil, nil), got (%v, %v)", p, err)
	}
	// A nil publisher is a valid, disabled publisher.
	var disabled *KafkaPublisher
	if err := disabled.PublishAccountCreated(context.Background(), &accountdomain.Account{ID: 1, Name: "a"}); err != nil {
		t.Errorf("nil publisher should no-op, got %v", err)
	}
	if err := disabled.Close(); err != nil {
		t.Errorf("nil publisher Close should no-op, got %v", err)
	}
}
