package mailer

import "errors"

var (
	// ErrNoCredentials indicates the sender address or password is missing.
	ErrNoCredentials = errors.New("sender address and password are required")

	// ErrNoRecipient indicates no recipient was specified.
	ErrNoRecipient = errors.New("email must have at least one recipient")

	// ErrNoSubject indicates no subject was provided.
	ErrNoSubject = errors.New("email must have a subject")

	// ErrNoContent indicates no HTML content was provided.
	ErrNoContent = errors.New("email must have HTML content")

	// ErrDialFailed indicates the transport session could not be established.
	ErrDialFailed = errors.New("failed to connect to mail server")

	// ErrSendFailed indicates email sending failed.
	ErrSendFailed = errors.New("failed to send email")

	// ErrSessionClosed indicates Send was called on a closed session.
	ErrSessionClosed = errors.New("mail session is closed")
)
