package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsUniqueViolation(t *testing.T) {
	uniq := &pgconn.PgError{Code: "23505", ConstraintName: "verifications_provider_name_provider_id_idx"}
	if !isUniqueViolation(uniq) {
		t.Error("23505 should be detected as unique violation")
	}
	if !isUniqueViolation(fmt.Errorf("create verification: %w", uniq)) {
		t.Error("wrapped 23505 should be detected as unique violation")
	}
	if isUniqueViolation(&pgconn.PgError{Code: "23503"}) {
		t.Error("foreign-key violation is not a unique violation")
	}
	if isUniqueViolation(errors.New("network down")) {
		t.Error("plain errors are not unique violations")
	}
	if isUniqueViolation(nil) {
		t.Error("nil is not a unique violation")
	}
}
