package schedule

// MinPopulatedFields is the number of non-blank displayed fields a class
// record needs to be shown.
const MinPopulatedFields = 2

// ClassRow is the display form of a kept class record.
// Index is 1-based and counts kept rows only.
type ClassRow struct {
	FieldGroup string
	Section    string
	Subject    string
	ExamMode   string
	ExamDate   string
	ExamTime   string
	Index      int
}

// Values returns the six displayed columns in table order.
func (r ClassRow) Values() []string {
	return []string{r.FieldGroup, r.Section, r.Subject, r.ExamMode, r.ExamDate, r.ExamTime}
}

// Populated returns the number of non-blank displayed columns.
func (r ClassRow) Populated() int {
	n := 0
	for _, v := range r.Values() {
		if v != "" {
			n++
		}
	}
	return n
}

// ValidClasses cleans each record, drops those with fewer than
// MinPopulatedFields non-blank columns and numbers the rest from 1.
func ValidClasses(classes []ClassRecord) []ClassRow {
	rows := make([]ClassRow, 0, len(classes))
	for _, c := range classes {
		row := ClassRow{
			FieldGroup: Clean(c.FieldGroup),
			Section:    Clean(c.Section),
			Subject:    Clean(c.Subject),
			ExamMode:   Clean(c.ExamMode),
			ExamDate:   formatExamDate(c.ExamDate),
			ExamTime:   Clean(c.ExamTime),
		}
		if row.Populated() < MinPopulatedFields {
			continue
		}
		row.Index = len(rows) + 1
		rows = append(rows, row)
	}
	return rows
}

// formatExamDate cleans string dates before formatting them; structured
// values go straight to FormatDate.
func formatExamDate(v any) string {
	if s, ok := v.(string); ok {
		return FormatDate(Clean(s))
	}
	return FormatDate(v)
}
