package mailer

import (
	"fmt"
	"strings"
)

// Credentials are supplied by the operator for one session and never stored.
type Credentials struct {
	Address  string // Sender address, also used as the SMTP username
	Password string // Application-specific password or API key
}

// Validate reports ErrNoCredentials when either field is blank.
func (c Credentials) Validate() error {
	if strings.TrimSpace(c.Address) == "" || c.Password == "" {
		return ErrNoCredentials
	}
	return nil
}

// String hides the password so credentials can be logged safely.
func (c Credentials) String() string {
	return c.Address
}

// Recipient formats a name and email into RFC 5322 address format.
// Returns "Name <email>" if name is provided, otherwise just email.
func Recipient(name, email string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Email represents a fully-prepared email message ready for sending.
type Email struct {
	Headers map[string]string // Custom headers
	Tags    map[string]string // Provider-specific tags
	Subject string            // Email subject
	HTML    string            // HTML body content
	From    string            // Override the session's sender address
	ReplyTo string            // Reply-to address
	To      []string          // Recipients (at least one required)
}

// Validate checks that the email can be handed to a transport.
func (e *Email) Validate() error {
	if e == nil || len(e.To) == 0 {
		return ErrNoRecipient
	}
	if e.Subject == "" {
		return ErrNoSubject
	}
	if e.HTML == "" {
		return ErrNoContent
	}
	return nil
}

// Sender returns the From override or the fallback address.
func (e *Email) Sender(fallback string) string {
	if e.From != "" {
		return e.From
	}
	return fallback
}
