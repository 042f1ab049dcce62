package health

import "errors"

var (
	// ErrCheckFailed is reported for a check that returned an error.
	ErrCheckFailed = errors.New("health: check failed")
	// ErrCheckTimeout is reported for a check cut off by the probe timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
