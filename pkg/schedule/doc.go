// Package schedule turns raw exam-schedule spreadsheet rows into per-lecturer
// recipient data.
//
// The pipeline is strictly one way:
//
//	raw rows -> FilterAddressed -> Group -> RecipientMap -> ValidClasses
//
// Row values are cleaned with [Clean] and exam dates are normalized to
// DD/MM/YYYY with [FormatDate]. Spreadsheet columns are resolved through an
// explicit, ordered alias table ([Columns]) so ASCII and accented header
// spellings both work; the first present non-empty alias wins.
//
// # Usage
//
//	cols := schedule.DefaultColumns()
//	recipients := schedule.Group(schedule.FilterAddressed(rows, cols), cols)
//
//	for _, r := range recipients.Recipients() {
//		for _, row := range schedule.ValidClasses(r.Classes) {
//			fmt.Println(row.Index, row.Subject, row.ExamDate)
//		}
//	}
//
// Grouping keeps every row with a usable address; the minimum-informativeness
// filter is applied later by [ValidClasses], at render time.
package schedule
