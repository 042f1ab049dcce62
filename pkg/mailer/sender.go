package mailer

import "context"

// Sender delivers a fully-prepared Email.
type Sender interface {
	// Send delivers an email message.
	// The Email must have To, Subject, and HTML already set.
	Send(ctx context.Context, email *Email) error
}

// Session is an authenticated connection to a mail transport.
// A Session is used by a single goroutine and must be closed when done.
type Session interface {
	Sender
	Close() error
}

// Dialer opens sessions on a mail transport.
type Dialer interface {
	// Dial authenticates with creds and returns a ready Session.
	// Errors returned here mean no message can be sent on this transport.
	Dial(ctx context.Context, creds Credentials) (Session, error)
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func(ctx context.Context, creds Credentials) (Session, error)

// Dial implements Dialer.
func (f DialerFunc) Dial(ctx context.Context, creds Credentials) (Session, error) {
	return f(ctx, creds)
}
