package schedule

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Columns maps each logical field to an ordered list of spreadsheet header
// aliases. Lookups try the aliases in order and the first present non-empty
// cell wins.
type Columns struct {
	Address    []string `yaml:"address"`
	Name       []string `yaml:"name"`
	FieldGroup []string `yaml:"field_group"`
	Section    []string `yaml:"section"`
	Subject    []string `yaml:"subject"`
	ExamMode   []string `yaml:"exam_mode"`
	ExamDate   []string `yaml:"exam_date"`
	ExamTime   []string `yaml:"exam_time"`
}

// DefaultColumns returns the alias table for the standard exam-schedule export,
// with ASCII spellings first and accented Vietnamese spellings after them.
func DefaultColumns() Columns {
	return Columns{
		Address:    []string{"Email"},
		Name:       []string{"Giang_vien", "Giảng_viên"},
		FieldGroup: []string{"Nganh", "Ngành"},
		Section:    []string{"Lop", "Lớp"},
		Subject:    []string{"Hoc_phan", "Môn_thi", "Học_phần", "Mon_thi"},
		ExamMode:   []string{"Hinh_thuc_thi", "Hình_thức_thi"},
		ExamDate:   []string{"Ngay", "Ngày", "Ngay_thi", "Ngày_thi"},
		ExamTime:   []string{"Gio_thi", "Giờ_thi"},
	}.normalized()
}

// LoadColumns decodes a YAML alias file on top of DefaultColumns.
// Fields absent from the file keep their default aliases.
//
// Example file:
//
//	subject: [Hoc_phan, Course]
//	exam_date: [Exam_date]
func LoadColumns(r io.Reader) (Columns, error) {
	var override Columns
	if err := yaml.NewDecoder(r).Decode(&override); err != nil && !errors.Is(err, io.EOF) {
		return Columns{}, fmt.Errorf("%w: %v", ErrInvalidColumns, err)
	}

	cols := DefaultColumns()
	merge := func(dst *[]string, src []string) {
		if len(src) > 0 {
			*dst = src
		}
	}
	merge(&cols.Address, override.Address)
	merge(&cols.Name, override.Name)
	merge(&cols.FieldGroup, override.FieldGroup)
	merge(&cols.Section, override.Section)
	merge(&cols.Subject, override.Subject)
	merge(&cols.ExamMode, override.ExamMode)
	merge(&cols.ExamDate, override.ExamDate)
	merge(&cols.ExamTime, override.ExamTime)

	return cols.normalized(), nil
}

// Known reports whether header matches any alias in the table.
func (c Columns) Known(header string) bool {
	h := NormalizeHeader(header)
	for _, aliases := range c.all() {
		if slices.Contains(aliases, h) {
			return true
		}
	}
	return false
}

// HasAddress reports whether any of headers is an address column.
func (c Columns) HasAddress(headers []string) bool {
	for _, h := range headers {
		if slices.Contains(c.Address, NormalizeHeader(h)) {
			return true
		}
	}
	return false
}

// IsExamDate reports whether header is an exam date column.
func (c Columns) IsExamDate(header string) bool {
	return slices.Contains(c.ExamDate, NormalizeHeader(header))
}

func (c Columns) all() [][]string {
	return [][]string{
		c.Address, c.Name, c.FieldGroup, c.Section,
		c.Subject, c.ExamMode, c.ExamDate, c.ExamTime,
	}
}

func (c Columns) normalized() Columns {
	n := func(aliases []string) []string {
		out := make([]string, 0, len(aliases))
		for _, a := range aliases {
			if a = NormalizeHeader(a); a != "" {
				out = append(out, a)
			}
		}
		return out
	}
	return Columns{
		Address:    n(c.Address),
		Name:       n(c.Name),
		FieldGroup: n(c.FieldGroup),
		Section:    n(c.Section),
		Subject:    n(c.Subject),
		ExamMode:   n(c.ExamMode),
		ExamDate:   n(c.ExamDate),
		ExamTime:   n(c.ExamTime),
	}
}

// NormalizeHeader trims a header cell and converts it to Unicode NFC, so that
// decomposed accents written by some spreadsheet tools match the aliases.
func NormalizeHeader(header string) string {
	return norm.NFC.String(strings.TrimSpace(header))
}
