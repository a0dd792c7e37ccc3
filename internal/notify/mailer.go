// Package notify delivers best-effort notifications (welcome mail) and the
// async dispatch helper the resolver uses for fire-and-forget side effects.
package notify

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

// Mailer sends the registration welcome mail.
type Mailer interface {
	// SendWelcome mails the submitted username and password to the address
	// the member registered with. This is the one moment the plaintext
	// password is ever disclosed; after this the secret exists only as a
	// hash. Implementations must never log the password.
	SendWelcome(ctx context.Context, to, username, password string) error
}

// SMTPMailer sends mail through a plain SMTP relay (no auth, no TLS), the
// way the internal relay is deployed.
type SMTPMailer struct {
	Host string
	Port int
	From string
}

// NewSMTPMailer returns a mailer for the given relay. Returns nil when host
// is empty so the caller can wire a disabled mailer without special-casing.
func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	if host == "" {
		return nil
	}
	if from == "" {
		from = "noreply@soapee.com"
	}
	return &SMTPMailer{Host: host, Port: port, From: from}
}

// SendWelcome sends the registration-details mail.
func (m *SMTPMailer) SendWelcome(ctx context.Context, to, username, password string) error {
	if m == nil {
		return nil
	}
	if to == "" {
		return fmt.Errorf("mail: empty recipient")
	}

	msg := buildMessage(m.From, to, "SOAPEE.COM - Registration Details", welcomeBody(username, password))
	addr := net.JoinHostPort(m.Host, strconv.Itoa(m.Port))

	// net/smtp has no context support; dial with the ctx and push its
	// deadline down to the connection so a relay that accepts TCP but never
	// greets cannot hold the session past the caller's bound.
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return err
		}
	}

	c, err := smtp.NewClient(conn, m.Host)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Mail(m.From); err != nil {
		return err
	}
	if err := c.Rcpt(to); err != nil {
		return err
	}
	w, err := c.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return c.Quit()
}

func buildMessage(from, to, subject, body string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	return []byte(b.String())
}

func welcomeBody(username, password string) string {
	return fmt.Sprintf(`Thank you for signing up and welcome to http://soapee.com

Please keep this email safe as it contains your registration username and password.

Your login details are:

  username: %s
  password: %s

Please follow us on either Facebook ( https://www.facebook.com/soapeepage ) or Reddit ( https://www.reddit.com/r/soapee ) for Soapee news and updates.

I hope you enjoy Soapee.com.
`, username, password)
}
