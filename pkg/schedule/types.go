package schedule

import (
	"encoding/json"
	"errors"
	"iter"
	"time"
)

// RawRow is one spreadsheet record keyed by normalized header name.
// Values are nil, string, time.Time or another scalar read from the sheet.
type RawRow map[string]any

// Lookup returns the first present non-empty value among aliases, or nil.
func (r RawRow) Lookup(aliases []string) any {
	for _, alias := range aliases {
		if v, ok := r[alias]; ok && !isEmpty(v) {
			return v
		}
	}
	return nil
}

// ClassRecord holds the schedule attributes of one row.
// Text fields are cleaned at grouping time; ExamDate keeps the raw cell value
// and is formatted at render time.
type ClassRecord struct {
	ExamDate   any
	FieldGroup string
	Section    string
	Subject    string
	ExamMode   string
	ExamTime   string
}

// classRecordJSON is the storage form of ClassRecord. A time.Time exam date is
// kept apart from a string one so formatting stays identical after a round trip.
type classRecordJSON struct {
	ExamDateTime *time.Time `json:"exam_date_time,omitempty"`
	ExamDate     string     `json:"exam_date,omitempty"`
	FieldGroup   string     `json:"field_group,omitempty"`
	Section      string     `json:"section,omitempty"`
	Subject      string     `json:"subject,omitempty"`
	ExamMode     string     `json:"exam_mode,omitempty"`
	ExamTime     string     `json:"exam_time,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (c ClassRecord) MarshalJSON() ([]byte, error) {
	out := classRecordJSON{
		FieldGroup: c.FieldGroup,
		Section:    c.Section,
		Subject:    c.Subject,
		ExamMode:   c.ExamMode,
		ExamTime:   c.ExamTime,
	}
	switch v := c.ExamDate.(type) {
	case time.Time:
		out.ExamDateTime = &v
	case *time.Time:
		out.ExamDateTime = v
	default:
		out.ExamDate = stringify(v)
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *ClassRecord) UnmarshalJSON(data []byte) error {
	var in classRecordJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return errors.Join(ErrInvalidClassRecord, err)
	}

	*c = ClassRecord{
		FieldGroup: in.FieldGroup,
		Section:    in.Section,
		Subject:    in.Subject,
		ExamMode:   in.ExamMode,
		ExamTime:   in.ExamTime,
	}
	switch {
	case in.ExamDateTime != nil:
		c.ExamDate = *in.ExamDateTime
	case in.ExamDate != "":
		c.ExamDate = in.ExamDate
	}
	return nil
}

// Recipient is a lecturer identified by email address, with the class records
// that reference them in row order.
type Recipient struct {
	Address string        `json:"address"`
	Name    string        `json:"name"`
	Classes []ClassRecord `json:"classes"`
}

// RecipientMap maps addresses to recipients and iterates them in order of
// first appearance.
type RecipientMap struct {
	byAddress map[string]*Recipient
	order     []string
}

// NewRecipientMap creates an empty map.
func NewRecipientMap() *RecipientMap {
	return &RecipientMap{byAddress: make(map[string]*Recipient)}
}

// FromRecipients rebuilds a map from an ordered recipient list.
// Later duplicates of an address are merged into the first one.
func FromRecipients(list []*Recipient) *RecipientMap {
	m := NewRecipientMap()
	for _, r := range list {
		if r == nil {
			continue
		}
		existing := m.ensure(r.Address, r.Name)
		existing.Classes = append(existing.Classes, r.Classes...)
	}
	return m
}

// Len returns the number of recipients.
func (m *RecipientMap) Len() int {
	return len(m.order)
}

// Get returns the recipient for address.
func (m *RecipientMap) Get(address string) (*Recipient, bool) {
	r, ok := m.byAddress[address]
	return r, ok
}

// Addresses returns the keys in first-appearance order.
func (m *RecipientMap) Addresses() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Recipients returns the recipients in first-appearance order.
func (m *RecipientMap) Recipients() []*Recipient {
	out := make([]*Recipient, 0, len(m.order))
	for _, addr := range m.order {
		out = append(out, m.byAddress[addr])
	}
	return out
}

// All iterates address/recipient pairs in first-appearance order.
func (m *RecipientMap) All() iter.Seq2[string, *Recipient] {
	return func(yield func(string, *Recipient) bool) {
		for _, addr := range m.order {
			if !yield(addr, m.byAddress[addr]) {
				return
			}
		}
	}
}

// ClassCount returns the number of class records across all recipients.
func (m *RecipientMap) ClassCount() int {
	n := 0
	for _, r := range m.byAddress {
		n += len(r.Classes)
	}
	return n
}

func (m *RecipientMap) ensure(address, name string) *Recipient {
	if r, ok := m.byAddress[address]; ok {
		return r
	}
	r := &Recipient{Address: address, Name: name}
	m.byAddress[address] = r
	m.order = append(m.order, address)
	return r
}
