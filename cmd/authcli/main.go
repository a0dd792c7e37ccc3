// authcli runs one signup-or-login resolution from the terminal: it prompts
// for a password, resolves the submitted username against the credential
// store, and prints the account plus a session token. Used by operators to
// create or check accounts without the web frontend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/term"

	"soapee/backend/internal/config"
	"soapee/backend/internal/db"
	"soapee/backend/internal/feed"
	"soapee/backend/internal/identity/service"
	"soapee/backend/internal/logging"
	"soapee/backend/internal/notify"
	"soapee/backend/internal/security"
	"soapee/backend/internal/store"
	"soapee/backend/internal/telemetry"
)

func main() {
	username := flag.String("username", "", "Username to sign up or log in")
	email := flag.String("email", "", "Email address (optional, signup only)")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall deadline for the resolution")
	flag.Parse()

	if *username == "" {
		fmt.Fprintln(os.Stderr, "usage: authcli -username <name> [-email <address>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	password, err := readPassword()
	if err != nil {
		log.Fatalf("read password: %v", err)
	}

	database, err := db.Open(cfg.DatabaseURL, cfg.DBMaxOpenConns)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer database.Close()

	publisher, err := feed.NewKafkaPublisher(cfg.BrokerList(), cfg.FeedKafkaTopic)
	if err != nil {
		log.Fatalf("feed: %v", err)
	}
	defer publisher.Close()

	metrics, err := telemetry.NewOTelRecorder()
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}

	resolver := service.NewResolver(
		store.NewPostgres(database),
		security.NewHasher(cfg.BcryptCost),
		publisher,
		notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom),
		logging.Default(),
		metrics,
	)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	account, err := resolver.Resolve(ctx, service.Payload{
		Username: *username,
		Password: string(password),
		Email:    *email,
	})
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			fmt.Fprintln(os.Stderr, verr.Error())
		case errors.Is(err, service.ErrInvalidCredentials):
			fmt.Fprintln(os.Stderr, "invalid credentials")
		case errors.Is(err, service.ErrUsernameTaken):
			fmt.Fprintln(os.Stderr, "username already taken")
		default:
			fmt.Fprintf(os.Stderr, "resolve: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("account %d (%s)", account.ID, account.Name)
	if account.Email != "" {
		fmt.Printf(" <%s>", account.Email)
	}
	fmt.Printf(", last logged in %s\n", account.LastLoggedIn.Format(time.RFC3339))

	if cfg.JWTSecret != "" {
		tokens := security.NewTokenProvider([]byte(cfg.JWTSecret), "soapee", cfg.AccessTTL())
		token, _, expiresAt, err := tokens.Issue(account.ID, account.Name)
		if err != nil {
			log.Fatalf("token: %v", err)
		}
		fmt.Printf("session token (expires %s):\n%s\n", expiresAt.Format(time.RFC3339), token)
	}
}

// readPassword reads the password from the terminal without echo.
func readPassword() ([]byte, error) {
	fmt.Fprint(os.Stderr, "Password: ")
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, err
	}
	return pw, nil
}
