package dispatch

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/exammail/pkg/logger"
	"github.com/dmitrymomot/exammail/pkg/mailer"
	"github.com/dmitrymomot/exammail/pkg/notice"
	"github.com/dmitrymomot/exammail/pkg/schedule"
)

// Dispatcher sends exam notices.
type Dispatcher struct {
	primary  mailer.Dialer
	fallback mailer.Dialer
	logger   *slog.Logger
	tags     map[string]string
	replyTo  string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithPrimary sets the transport dialed first in live mode.
func WithPrimary(d mailer.Dialer) Option {
	return func(x *Dispatcher) { x.primary = d }
}

// WithFallback sets the transport dialed once when the primary fails.
func WithFallback(d mailer.Dialer) Option {
	return func(x *Dispatcher) { x.fallback = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(x *Dispatcher) {
		if l != nil {
			x.logger = l
		}
	}
}

// WithTags attaches provider tags to every email.
func WithTags(tags map[string]string) Option {
	return func(x *Dispatcher) { x.tags = tags }
}

// WithReplyTo sets the Reply-To address of every email.
func WithReplyTo(addr string) Option {
	return func(x *Dispatcher) { x.replyTo = addr }
}

// New creates a Dispatcher.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{logger: logger.NewNope()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch handles every recipient in map order. In test mode no transport
// is contacted and each rendered notice is reported through obs as a
// preview. A nil observer is allowed.
//
// The only error returned is a failure to open a session in live mode, in
// which case the result is nil.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	recipients *schedule.RecipientMap,
	creds mailer.Credentials,
	testMode bool,
	obs Observer,
) (*Result, error) {
	if obs == nil {
		obs = nopObserver{}
	}
	if recipients == nil {
		recipients = schedule.NewRecipientMap()
	}

	var session mailer.Session
	if !testMode {
		s, err := d.connect(ctx, creds)
		if err != nil {
			return nil, err
		}
		session = s
		defer func() {
			if err := session.Close(); err != nil {
				d.logger.WarnContext(ctx, "failed to close mail session", slog.String("error", err.Error()))
			}
		}()
	}

	res := &Result{Total: recipients.Len()}
	index := 0
	for addr, r := range recipients.All() {
		index++
		p := Progress{
			Address: addr,
			Name:    r.Name,
			Subject: notice.Subject(r),
			Index:   index,
			Total:   res.Total,
		}

		html, err := notice.Render(r)
		switch {
		case err != nil:
		case testMode:
			p.Preview = html
		default:
			err = session.Send(ctx, d.email(addr, p.Subject, html))
		}

		if err != nil {
			res.Failed++
			res.Failures = append(res.Failures, Failure{Address: addr, Name: r.Name, Message: err.Error()})
			p.Err = err
			d.logger.WarnContext(ctx, "failed to send exam notice",
				slog.String("email", addr),
				slog.String("error", err.Error()),
			)
		} else {
			res.Succeeded++
			d.logger.DebugContext(ctx, "exam notice handled",
				slog.String("email", addr),
				slog.Bool("test_mode", testMode),
			)
		}

		p.Succeeded, p.Failed = res.Succeeded, res.Failed
		obs.Observe(p)
	}

	d.logger.InfoContext(ctx, "dispatch finished",
		slog.Int("succeeded", res.Succeeded),
		slog.Int("failed", res.Failed),
		slog.Int("total", res.Total),
		slog.Bool("test_mode", testMode),
	)

	return res, nil
}

// connect dials the primary transport and, when that fails, the fallback
// exactly once.
func (d *Dispatcher) connect(ctx context.Context, creds mailer.Credentials) (mailer.Session, error) {
	if d.primary == nil {
		return nil, &ConnectionError{Primary: ErrNoTransport}
	}

	s, primaryErr := d.primary.Dial(ctx, creds)
	if primaryErr == nil {
		return s, nil
	}
	d.logger.WarnContext(ctx, "primary mail transport failed",
		slog.String("sender", creds.Address),
		slog.String("error", primaryErr.Error()),
	)

	if d.fallback == nil {
		return nil, &ConnectionError{Primary: primaryErr}
	}

	s, fallbackErr := d.fallback.Dial(ctx, creds)
	if fallbackErr == nil {
		d.logger.InfoContext(ctx, "using fallback mail transport", slog.String("sender", creds.Address))
		return s, nil
	}
	d.logger.ErrorContext(ctx, "fallback mail transport failed",
		slog.String("sender", creds.Address),
		slog.String("error", fallbackErr.Error()),
	)

	return nil, &ConnectionError{Primary: primaryErr, Fallback: fallbackErr}
}

func (d *Dispatcher) email(to, subject, html string) *mailer.Email {
	return &mailer.Email{
		To:      []string{to},
		Subject: subject,
		HTML:    html,
		ReplyTo: d.replyTo,
		Tags:    d.tags,
	}
}
