package schedule

import "strings"

// FilterAddressed drops rows whose address column is missing or empty.
func FilterAddressed(rows []RawRow, cols Columns) []RawRow {
	out := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		if Clean(row.Lookup(cols.Address)) != "" {
			out = append(out, row)
		}
	}
	return out
}

// Group aggregates rows into recipients keyed by address.
//
// The key is the address with surrounding whitespace trimmed; inner spaces
// are kept. Rows whose address does not contain "@" are skipped silently. The display
// name is taken from the first row of each address. Every other row is
// appended as a ClassRecord, without validation; see ValidClasses.
func Group(rows []RawRow, cols Columns) *RecipientMap {
	m := NewRecipientMap()

	for _, row := range rows {
		address := strings.TrimSpace(stringify(row.Lookup(cols.Address)))
		if address == "" || !strings.Contains(address, "@") {
			continue
		}

		r := m.ensure(address, Clean(row.Lookup(cols.Name)))
		r.Classes = append(r.Classes, ClassRecord{
			FieldGroup: Clean(row.Lookup(cols.FieldGroup)),
			Section:    Clean(row.Lookup(cols.Section)),
			Subject:    Clean(row.Lookup(cols.Subject)),
			ExamMode:   Clean(row.Lookup(cols.ExamMode)),
			ExamDate:   row.Lookup(cols.ExamDate),
			ExamTime:   Clean(row.Lookup(cols.ExamTime)),
		})
	}

	return m
}
