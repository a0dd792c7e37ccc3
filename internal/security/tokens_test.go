package security

import (
	"errors"
	"testing"
	"time"
)

func TestTokenProvider_IssueAndValidate(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), "soapee", time.Hour)

	token, jti, expiresAt, err := p.Issue(42, "alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" || jti == "" {
		t.Fatal("Issue returned empty token or jti")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expiresAt should be in the future")
	}

	id, err := p.Validate(token)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if id != 42 {
		t.Errorf("account id = %d, want 42", id)
	}
}

func TestTokenProvider_ValidateRejectsWrongSecret(t *testing.T) {
	p1 := NewTokenProvider([]byte("secret-one"), "soapee", time.Hour)
	p2 := NewTokenProvider([]byte("secret-two"), "soapee", time.Hour)

	token, _, _, err := p1.Issue(7, "bob")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p2.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate with wrong secret = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_ValidateRejectsExpired(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), "soapee", -time.Minute)

	token, _, _, err := p.Issue(7, "bob")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := p.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate of expired token = %v, want ErrInvalidToken", err)
	}
}

func TestTokenProvider_ValidateRejectsGarbage(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), "soapee", time.Hour)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := p.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestTokenProvider_JTIUnique(t *testing.T) {
	p := NewTokenProvider([]byte("test-secret"), "soapee", time.Hour)
	_, jti1, _, _ := p.Issue(1, "a")
	_, jti2, _, _ := p.Issue(1, "a")
	if jti1 == jti2 {
		t.Error("jti should be unique per issued token")
	}
}
