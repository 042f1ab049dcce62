package workspace

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/exammail/pkg/schedule"
)

// Store keeps uploads for a limited time.
type Store interface {
	// Save stores u, replacing any upload with the same ID.
	Save(ctx context.Context, u *Upload) error

	// Load returns the upload or ErrNotFound.
	Load(ctx context.Context, id string) (*Upload, error)

	// Delete removes the upload. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Close releases background resources.
	Close() error
}

// Upload is one parsed spreadsheet.
type Upload struct {
	CreatedAt     time.Time             `json:"created_at"`
	ID            string                `json:"id"`
	Filename      string                `json:"filename"`
	Sheet         string                `json:"sheet,omitempty"`
	Columns       []string              `json:"columns"`
	Recipients    []*schedule.Recipient `json:"recipients"`
	TotalRows     int                   `json:"total_rows"`
	AddressedRows int                   `json:"addressed_rows"`
}

// NewUpload creates an upload with a fresh ID.
func NewUpload(filename string) *Upload {
	return &Upload{
		ID:        uuid.NewString(),
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	}
}

// SetRecipients stores the grouped recipients in iteration order.
func (u *Upload) SetRecipients(m *schedule.RecipientMap) {
	u.Recipients = m.Recipients()
}

// RecipientMap rebuilds the grouped recipients.
func (u *Upload) RecipientMap() *schedule.RecipientMap {
	return schedule.FromRecipients(u.Recipients)
}

// ClassCount returns the number of class records across all recipients.
func (u *Upload) ClassCount() int {
	n := 0
	for _, r := range u.Recipients {
		n += len(r.Classes)
	}
	return n
}

// ValidID reports whether id has the form produced by NewUpload.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

func validate(u *Upload) error {
	if u == nil || u.ID == "" {
		return ErrInvalidUpload
	}
	return nil
}
