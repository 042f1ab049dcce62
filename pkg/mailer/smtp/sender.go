// Package smtp implements mailer.Dialer on SMTP submission with mandatory
// STARTTLS and PLAIN authentication, using github.com/wneessen/go-mail.
package smtp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	mail "github.com/wneessen/go-mail"

	"github.com/dmitrymomot/exammail/pkg/logger"
	"github.com/dmitrymomot/exammail/pkg/mailer"
)

// Dialer opens authenticated SMTP sessions.
type Dialer struct {
	logger *slog.Logger
	config Config
}

// Option configures a Dialer.
type Option func(*Dialer)

// WithLogger sets the logger used for session events.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dialer) {
		if l != nil {
			d.logger = l
		}
	}
}

// New creates a Dialer. Zero Host and Port fall back to
// DefaultHost and DefaultPort.
func New(cfg Config, opts ...Option) *Dialer {
	d := &Dialer{
		config: cfg.withDefaults(),
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dial implements mailer.Dialer.
func (d *Dialer) Dial(ctx context.Context, creds mailer.Credentials) (mailer.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	client, err := mail.NewClient(d.config.Host, d.clientOptions(creds)...)
	if err != nil {
		return nil, errors.Join(mailer.ErrDialFailed, err)
	}

	if err := client.DialWithContext(ctx); err != nil {
		return nil, errors.Join(mailer.ErrDialFailed, fmt.Errorf("smtp %s:%d: %w", d.config.Host, d.config.Port, err))
	}

	d.logger.DebugContext(ctx, "smtp session established",
		slog.String("host", d.config.Host),
		slog.Int("port", d.config.Port),
		slog.String("sender", creds.Address),
	)

	return &session{
		client: client,
		from:   mailer.Recipient(d.config.SenderName, creds.Address),
	}, nil
}

func (d *Dialer) clientOptions(creds mailer.Credentials) []mail.Option {
	opts := []mail.Option{
		mail.WithPort(d.config.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(creds.Address),
		mail.WithPassword(creds.Password),
	}
	if d.config.Timeout > 0 {
		opts = append(opts, mail.WithTimeout(d.config.Timeout))
	}
	return opts
}

type session struct {
	client *mail.Client
	from   string
	closed bool
}

// Send implements mailer.Sender.
func (s *session) Send(_ context.Context, email *mailer.Email) error {
	if s.closed {
		return mailer.ErrSessionClosed
	}

	msg, err := BuildMessage(s.from, email)
	if err != nil {
		return err
	}

	if err := s.client.Send(msg); err != nil {
		return errors.Join(mailer.ErrSendFailed, err)
	}
	return nil
}

// Close implements mailer.Session.
func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.client.Close()
}

// BuildMessage converts an Email into a go-mail message sent from from,
// unless the email overrides its sender.
func BuildMessage(from string, email *mailer.Email) (*mail.Msg, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	msg := mail.NewMsg()
	if err := msg.From(email.Sender(from)); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(email.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}
	if email.ReplyTo != "" {
		if err := msg.ReplyTo(email.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to address: %w", err)
		}
	}
	for k, v := range email.Headers {
		msg.SetGenHeader(mail.Header(k), v)
	}

	msg.Subject(email.Subject)
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)

	return msg, nil
}
