package workspace

import "errors"

var (
	// ErrNotFound is returned when an upload does not exist or has expired.
	ErrNotFound = errors.New("workspace: upload not found")

	// ErrClosed is returned when the store has been closed.
	ErrClosed = errors.New("workspace: closed")

	// ErrInvalidUpload is returned for a nil upload or one without an ID.
	ErrInvalidUpload = errors.New("workspace: invalid upload")

	// ErrMarshal is returned when an upload cannot be encoded.
	ErrMarshal = errors.New("workspace: failed to marshal upload")

	// ErrUnmarshal is returned when a stored upload cannot be decoded.
	ErrUnmarshal = errors.New("workspace: failed to unmarshal upload")
)
