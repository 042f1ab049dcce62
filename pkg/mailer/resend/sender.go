// Package resend implements mailer.Dialer on the Resend HTTP API.
// The operator's password field carries the Resend API key.
package resend

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/resend/resend-go/v3"

	"github.com/dmitrymomot/exammail/pkg/mailer"
)

// Dialer creates Resend API sessions.
type Dialer struct {
	newClient func(apiKey string) *resend.Client
	config    Config
}

// New creates a Resend dialer.
func New(cfg Config) *Dialer {
	return &Dialer{
		config:    cfg,
		newClient: resend.NewClient,
	}
}

// Dial implements mailer.Dialer. The API is stateless, so dialing only
// validates the credentials and prepares a client.
func (d *Dialer) Dial(_ context.Context, creds mailer.Credentials) (mailer.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	return &session{
		client: d.newClient(creds.Password),
		from:   mailer.Recipient(d.config.SenderName, creds.Address),
	}, nil
}

type session struct {
	client *resend.Client
	from   string
}

// Send implements mailer.Sender.
func (s *session) Send(ctx context.Context, email *mailer.Email) error {
	req, err := buildRequest(s.from, email)
	if err != nil {
		return err
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return errors.Join(mailer.ErrSendFailed, fmt.Errorf("resend: %w", err))
	}
	return nil
}

// Close implements mailer.Session.
func (s *session) Close() error {
	return nil
}

func buildRequest(from string, email *mailer.Email) (*resend.SendEmailRequest, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	req := &resend.SendEmailRequest{
		From:    email.Sender(from),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		ReplyTo: email.ReplyTo,
		Headers: email.Headers,
	}

	if len(email.Tags) > 0 {
		req.Tags = make([]resend.Tag, 0, len(email.Tags))
		for _, name := range slices.Sorted(maps.Keys(email.Tags)) {
			req.Tags = append(req.Tags, resend.Tag{Name: name, Value: email.Tags[name]})
		}
	}

	return req, nil
}
