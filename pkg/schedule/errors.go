package schedule

import "errors"

var (
	// ErrInvalidColumns indicates a column alias file could not be decoded.
	ErrInvalidColumns = errors.New("schedule: invalid column aliases")

	// ErrInvalidClassRecord indicates a stored class record could not be decoded.
	ErrInvalidClassRecord = errors.New("schedule: invalid class record")
)
