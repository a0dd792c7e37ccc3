// Package service implements the unified signup-or-login resolver: given a
// bare username/password pair it decides, from a single credential lookup,
// whether the caller is registering or authenticating, and runs the matching
// workflow.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	accountdomain "soapee/backend/internal/account/domain"
	"soapee/backend/internal/logging"
	"soapee/backend/internal/notify"
	"soapee/backend/internal/security"
	"soapee/backend/internal/telemetry"
	verificationdomain "soapee/backend/internal/verification/domain"
	verificationrepo "soapee/backend/internal/verification/repository"
)

// Payload is the submitted form: a username/password pair and an optional
// email address. The caller never declares whether it intends to sign up or
// log in.
type Payload struct {
	Username string
	Password string
	Email    string
}

// process tags which branch a resolution took. It is fixed once the initial
// lookup completes and never changes afterwards.
type process string

const (
	processLogin  process = "login"
	processSignup process = "signup"
)

// resolution is the ephemeral per-call state threaded through the workflow.
// It owns nothing beyond the request's lifetime and is discarded when
// Resolve returns.
type resolution struct {
	username string
	password string
	email    string

	process      process
	verification *verificationdomain.Verification
	account      *accountdomain.Account
}

// AccountRepo is the minimal account persistence the resolver needs.
type AccountRepo interface {
	GetByID(ctx context.Context, id int64) (*accountdomain.Account, error)
	Create(ctx context.Context, a *accountdomain.Account) error
	UpdateLastLoggedIn(ctx context.Context, id int64, at time.Time) error
}

// VerificationRepo is the minimal verification persistence the resolver needs.
type VerificationRepo interface {
	GetByProviderID(ctx context.Context, provider verificationdomain.Provider, providerID string) (*verificationdomain.Verification, error)
	Create(ctx context.Context, v *verificationdomain.Verification) error
}

// Store is the credential store collaborator. InTx runs fn against a
// transaction-scoped view of the same store, so signup's account and
// verification inserts commit or roll back together.
type Store interface {
	Accounts() AccountRepo
	Verifications() VerificationRepo
	InTx(ctx context.Context, fn func(s Store) error) error
}

// FeedPublisher emits the new-account feed event. Best-effort.
type FeedPublisher interface {
	PublishAccountCreated(ctx context.Context, a *accountdomain.Account) error
}

// Resolver orchestrates lookup, signup, and login. It holds no per-request
// state; concurrent resolutions share only the store.
type Resolver struct {
	store   Store
	hasher  *security.Hasher
	feed    FeedPublisher
	mailer  notify.Mailer
	log     logging.Logger
	metrics telemetry.Recorder
}

// NewResolver returns a Resolver over the given collaborators. feed and
// mailer may be nil (disabled); log and metrics default to slog and no-op.
func NewResolver(store Store, hasher *security.Hasher, feed FeedPublisher, mailer notify.Mailer, log logging.Logger, metrics telemetry.Recorder) *Resolver {
	if log == nil {
		log = logging.Default()
	}
	if metrics == nil {
		metrics = telemetry.NopRecorder{}
	}
	return &Resolver{
		store:   store,
		hasher:  hasher,
		feed:    feed,
		mailer:  mailer,
		log:     log,
		metrics: metrics,
	}
}

// Resolve runs one signup-or-login resolution and returns the resolved
// account, or one of the taxonomy errors: *ValidationError,
// ErrInvalidCredentials, ErrUsernameTaken, ErrStoreIntegrity, ErrHashing.
// Exactly one verification lookup is performed; the branch it selects is
// irrevocable for the rest of the call.
func (r *Resolver) Resolve(ctx context.Context, p Payload) (*accountdomain.Account, error) {
	res := &resolution{username: p.Username, password: p.Password, email: p.Email}

	if err := r.lookup(ctx, res); err != nil {
		// The branch was never fixed; tag the failure with the stage instead
		// of an empty process.
		r.metrics.RecordResolution(ctx, "lookup", outcome(err))
		return nil, err
	}

	var err error
	switch res.process {
	case processSignup:
		err = r.signup(ctx, res)
	case processLogin:
		err = r.login(ctx, res)
	}

	r.metrics.RecordResolution(ctx, string(res.process), outcome(err))
	if err != nil {
		return nil, err
	}
	return res.account, nil
}

// lookup queries for a local verification bound to the username and fixes
// the process tag. A verification whose account is gone is store corruption,
// reported as ErrStoreIntegrity, never as bad credentials.
func (r *Resolver) lookup(ctx context.Context, res *resolution) error {
	v, err := r.store.Verifications().GetByProviderID(ctx, verificationdomain.ProviderLocal, res.username)
	if err != nil {
		return fmt.Errorf("lookup verification: %w", err)
	}
	if v == nil {
		res.process = processSignup
		return nil
	}

	account, err := r.store.Accounts().GetByID(ctx, v.AccountID)
	if err != nil {
		return fmt.Errorf("load account %d: %w", v.AccountID, err)
	}
	if account == nil {
		r.log.Error(ctx, "verification without account", "verification_id", v.ID, "account_id", v.AccountID)
		return ErrStoreIntegrity
	}

	res.process = processLogin
	res.verification = v
	res.account = account
	return nil
}

// signup validates the fields, creates the account and its local
// verification in one transaction, then fires the best-effort side effects.
// Nothing is persisted when validation fails; a store-level uniqueness
// conflict surfaces as ErrUsernameTaken.
func (r *Resolver) signup(ctx context.Context, res *resolution) error {
	if verr := ValidateSignupFields(res.username, res.password); verr != nil {
		return verr
	}

	hash, err := r.hasher.Hash([]byte(res.password))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHashing, err)
	}

	now := time.Now().UTC()
	account := &accountdomain.Account{
		Name:         res.username,
		Email:        res.email,
		LastLoggedIn: now,
	}
	if err := account.Validate(); err != nil {
		verr := &ValidationError{}
		verr.add("username", err.Error())
		return verr
	}

	err = r.store.InTx(ctx, func(s Store) error {
		if err := s.Accounts().Create(ctx, account); err != nil {
			return err
		}
		return s.Verifications().Create(ctx, &verificationdomain.Verification{
			AccountID:  account.ID,
			Provider:   verificationdomain.ProviderLocal,
			ProviderID: res.username,
			Hash:       hash,
		})
	})
	if err != nil {
		if errors.Is(err, verificationrepo.ErrDuplicate) {
			return ErrUsernameTaken
		}
		return fmt.Errorf("create account: %w", err)
	}
	res.account = account

	// The account and verification are committed; from here on the identity
	// outcome is settled and delivery failures are logged only.
	if r.feed != nil {
		created := *account
		notify.Dispatch(r.log, "feed.account_created", func(ctx context.Context) error {
			return r.feed.PublishAccountCreated(ctx, &created)
		})
	}
	if res.email != "" && r.mailer != nil {
		to, username, password := res.email, res.username, res.password
		notify.Dispatch(r.log, "mail.welcome", func(ctx context.Context) error {
			return r.mailer.SendWelcome(ctx, to, username, password)
		})
	}
	return nil
}

// login verifies the password against the stored hash and, on success,
// persists the new last-logged-in timestamp. A mismatch mutates nothing.
func (r *Resolver) login(ctx context.Context, res *resolution) error {
	ok, err := r.hasher.Verify(res.verification.Hash, []byte(res.password))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrHashing, err)
	}
	if !ok {
		return ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := r.store.Accounts().UpdateLastLoggedIn(ctx, res.account.ID, now); err != nil {
		return fmt.Errorf("update last_logged_in: %w", err)
	}
	res.account.LastLoggedIn = now
	return nil
}

func outcome(err error) string {
	var verr *ValidationError
	switch {
	case err == nil:
		return "resolved"
	case errors.As(err, &verr):
		return "validation_failed"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrUsernameTaken):
		return "conflict"
	case errors.Is(err, ErrStoreIntegrity):
		return "integrity_error"
	default:
		return "internal_error"
	}
}
