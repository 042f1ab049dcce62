package notice

import "errors"

var (
	// ErrNilRecipient indicates Render was called without a recipient.
	ErrNilRecipient = errors.New("notice: nil recipient")

	// ErrRenderFailed indicates the layout could not be executed.
	ErrRenderFailed = errors.New("notice: failed to render")
)
