// Package netsmtp implements mailer.Dialer directly on net/smtp.
//
// It is the lower-level fallback transport: it dials, negotiates STARTTLS and
// authenticates itself, and writes the MIME message by hand. Use the smtp
// package as the primary transport.
package netsmtp

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"mime"
	"mime/quotedprintable"
	"net"
	netmail "net/mail"
	"net/smtp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/exammail/pkg/logger"
	"github.com/dmitrymomot/exammail/pkg/mailer"
	mailsmtp "github.com/dmitrymomot/exammail/pkg/mailer/smtp"
)

// ErrStartTLSUnsupported indicates the server does not offer STARTTLS.
var ErrStartTLSUnsupported = errors.New("netsmtp: server does not support STARTTLS")

// Dialer opens SMTP sessions with net/smtp.
type Dialer struct {
	logger    *slog.Logger
	tlsConfig *tls.Config
	config    mailsmtp.Config
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

// WithTLSConfig overrides the TLS configuration used for STARTTLS.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(d *Dialer) {
		if cfg != nil {
			d.tlsConfig = cfg
		}
	}
}

// New creates a Dialer sharing the primary transport's configuration.
func New(cfg mailsmtp.Config, opts ...Option) *Dialer {
	if cfg.Host == "" {
		cfg.Host = mailsmtp.DefaultHost
	}
	if cfg.Port == 0 {
		cfg.Port = mailsmtp.DefaultPort
	}

	d := &Dialer{
		config: cfg,
		logger: logger.NewNope(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.tlsConfig == nil {
		d.tlsConfig = &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}
	}
	return d
}

// Dial implements mailer.Dialer.
func (d *Dialer) Dial(ctx context.Context, creds mailer.Credentials) (mailer.Session, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	addr := net.JoinHostPort(d.config.Host, strconv.Itoa(d.config.Port))
	nd := net.Dialer{Timeout: d.config.Timeout}
	conn, err := nd.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, errors.Join(mailer.ErrDialFailed, err)
	}

	client, err := smtp.NewClient(conn, d.config.Host)
	if err != nil {
		_ = conn.Close()
		return nil, errors.Join(mailer.ErrDialFailed, err)
	}

	if err := d.handshake(client, creds); err != nil {
		_ = client.Close()
		return nil, errors.Join(mailer.ErrDialFailed, err)
	}

	d.logger.DebugContext(ctx, "net/smtp session established",
		slog.String("address", addr),
		slog.String("sender", creds.Address),
	)

	return &session{
		client: client,
		from:   mailer.Recipient(d.config.SenderName, creds.Address),
	}, nil
}

func (d *Dialer) handshake(client *smtp.Client, creds mailer.Credentials) error {
	if ok, _ := client.Extension("STARTTLS"); !ok {
		return ErrStartTLSUnsupported
	}
	if err := client.StartTLS(d.tlsConfig); err != nil {
		return fmt.Errorf("starttls: %w", err)
	}
	auth := smtp.PlainAuth("", creds.Address, creds.Password, d.config.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("auth: %w", err)
	}
	return nil
}

type session struct {
	client *smtp.Client
	from   string
	closed bool
}

// Send implements mailer.Sender.
func (s *session) Send(_ context.Context, email *mailer.Email) error {
	if s.closed {
		return mailer.ErrSessionClosed
	}

	from := email.Sender(s.from)
	body, err := BuildMessage(from, email, time.Now())
	if err != nil {
		return err
	}

	if err := s.transmit(envelopeAddress(from), email.To, body); err != nil {
		_ = s.client.Reset()
		return errors.Join(mailer.ErrSendFailed, err)
	}
	return nil
}

func (s *session) transmit(from string, to []string, body []byte) error {
	if err := s.client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := s.client.Rcpt(envelopeAddress(rcpt)); err != nil {
			return err
		}
	}
	w, err := s.client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Close implements mailer.Session.
func (s *session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.client.Quit(); err != nil {
		return s.client.Close()
	}
	return nil
}

// BuildMessage renders an RFC 5322 message with a quoted-printable HTML body.
func BuildMessage(from string, email *mailer.Email, date time.Time) ([]byte, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	header := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}

	header("From", headerAddress(from))
	header("To", joinAddresses(email.To))
	if email.ReplyTo != "" {
		header("Reply-To", headerAddress(email.ReplyTo))
	}
	header("Subject", mime.QEncoding.Encode("utf-8", email.Subject))
	header("Date", date.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.NewString(), domainOf(from)))
	for _, k := range slices.Sorted(maps.Keys(email.Headers)) {
		header(k, email.Headers[k])
	}
	header("MIME-Version", "1.0")
	header("Content-Type", `text/html; charset="UTF-8"`)
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(email.HTML)); err != nil {
		return nil, err
	}
	if err := qp.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// envelopeAddress strips the display name from an address.
func envelopeAddress(addr string) string {
	if parsed, err := netmail.ParseAddress(addr); err == nil {
		return parsed.Address
	}
	return addr
}

// headerAddress re-encodes an address so non-ASCII display names are
// RFC 2047 encoded.
func headerAddress(addr string) string {
	if parsed, err := netmail.ParseAddress(addr); err == nil {
		return parsed.String()
	}
	return addr
}

func domainOf(addr string) string {
	a := envelopeAddress(addr)
	if i := strings.LastIndex(a, "@"); i >= 0 {
		return a[i+1:]
	}
	return "localhost"
}

func joinAddresses(addrs []string) string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = headerAddress(a)
	}
	return strings.Join(out, ", ")
}

