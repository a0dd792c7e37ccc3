package domain

import (
	"testing"
	"time"
)

func TestAccountValidate(t *testing.T) {
	valid := &Account{Name: "alice", LastLoggedIn: time.Now().UTC()}
	if err := valid.Validate(); err != nil {
		t.Errorf("valid account: %v", err)
	}

	optional := &Account{Name: "bob", Email: "", ImageURL: ""}
	if err := optional.Validate(); err != nil {
		t.Errorf("email and image url are optional: %v", err)
	}

	if err := (&Account{}).Validate(); err == nil {
		t.Error("account without a name must not validate")
	}
}
