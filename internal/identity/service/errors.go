package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for the resolver; the caller maps them to its own failure
// surface (auth failure, conflict, internal error).
var (
	// ErrInvalidCredentials is returned on the login branch when the
	// submitted password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUsernameTaken is returned when the store's uniqueness constraint
	// rejects a signup, i.e. another resolution bound the username first.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrStoreIntegrity is returned when a verification exists but its
	// account does not. This is store corruption, not a wrong password, and
	// the two must never be conflated.
	ErrStoreIntegrity = errors.New("verification references missing account")

	// ErrHashing is returned when the hashing primitive itself fails.
	ErrHashing = errors.New("password hashing failed")
)

// ValidationError reports signup field violations. It is deterministic for a
// given payload: resolving the same invalid payload twice yields the same
// reasons and persists nothing.
type ValidationError struct {
	// Fields maps field name to the list of violated rules.
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("validation failed")
	for _, name := range names {
		fmt.Fprintf(&b, "; %s: %s", name, strings.Join(e.Fields[name], ", "))
	}
	return b.String()
}

func (e *ValidationError) add(field, reason string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], reason)
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }
