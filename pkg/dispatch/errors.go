package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection indicates no transport session could be established.
	ErrConnection = errors.New("could not connect to the mail server")

	// ErrNoTransport indicates live mode was requested without a primary dialer.
	ErrNoTransport = errors.New("no mail transport configured")
)

// ConnectionError reports the causes from both the primary and the fallback
// transport.
type ConnectionError struct {
	Primary  error
	Fallback error
}

func (e *ConnectionError) Error() string {
	if e.Fallback == nil {
		return fmt.Sprintf("%s: %v", ErrConnection, e.Primary)
	}
	return fmt.Sprintf("%s: primary: %v; fallback: %v", ErrConnection, e.Primary, e.Fallback)
}

// Unwrap exposes ErrConnection and both causes to errors.Is and errors.As.
func (e *ConnectionError) Unwrap() []error {
	errs := []error{ErrConnection}
	if e.Primary != nil {
		errs = append(errs, e.Primary)
	}
	if e.Fallback != nil {
		errs = append(errs, e.Fallback)
	}
	return errs
}
