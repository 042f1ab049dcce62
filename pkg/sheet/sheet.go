package sheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/dmitrymomot/exammail/pkg/schedule"
)

// Table is the content of one spreadsheet.
type Table struct {
	Sheet   string            `json:"sheet,omitempty"`
	Columns []string          `json:"columns"`
	Rows    []schedule.RawRow `json:"-"`
}

type options struct {
	sheet   string
	columns schedule.Columns
}

// Option configures Read.
type Option func(*options)

// WithSheet selects a workbook sheet by name. Ignored for CSV.
func WithSheet(name string) Option {
	return func(o *options) { o.sheet = name }
}

// WithColumns replaces the default column aliases.
func WithColumns(cols schedule.Columns) Option {
	return func(o *options) { o.columns = cols }
}

// Read parses r according to the extension of filename.
func Read(r io.Reader, filename string, opts ...Option) (*Table, error) {
	o := &options{columns: schedule.DefaultColumns()}
	for _, opt := range opts {
		opt(o)
	}

	t, err := read(r, strings.ToLower(filepath.Ext(filename)), o)
	if err != nil {
		return nil, &ReadError{Filename: filepath.Base(filename), Err: err}
	}
	return t, nil
}

func read(r io.Reader, ext string, o *options) (*Table, error) {
	switch ext {
	case ".xlsx", ".xlsm", ".csv":
	case ".xls":
		return nil, ErrLegacyExcel
	default:
		return nil, ErrUnsupportedFormat
	}

	r, err := sniff(r, ext)
	if err != nil {
		return nil, err
	}
	if ext == ".csv" {
		return readCSV(r, o)
	}
	return readExcel(r, o)
}

// ReadFile opens path and reads it.
func ReadFile(path string, opts ...Option) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{Filename: filepath.Base(path), Err: err}
	}
	defer f.Close()

	return Read(f, path, opts...)
}

func readExcel(r io.Reader, o *options) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	name := o.sheet
	if name == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrEmptySheet
		}
		name = sheets[0]
	}

	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	raw, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	t, err := build(rows, o.columns, func(row, col int, formatted string) any {
		if row >= len(raw) || col >= len(raw[row]) {
			return formatted
		}
		return excelDate(raw[row][col], formatted, date1904)
	})
	if err != nil {
		return nil, err
	}
	t.Sheet = name
	return t, nil
}

// excelDate converts a date serial to time.Time when the workbook formats
// the number as something else.
func excelDate(raw, formatted string, date1904 bool) any {
	if raw == formatted {
		return formatted
	}
	serial, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return formatted
	}
	tm, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return formatted
	}
	return tm
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(r io.Reader, o *options) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	return build(rows, o.columns, nil)
}

// build turns a header row and data rows into a Table. dateCell, when set,
// converts cells of exam date columns.
func build(rows [][]string, cols schedule.Columns, dateCell func(row, col int, formatted string) any) (*Table, error) {
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(rows[0]))
	dateCol := make([]bool, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = schedule.NormalizeHeader(h)
		dateCol[i] = dateCell != nil && cols.IsExamDate(headers[i])
	}
	if !cols.HasAddress(headers) {
		return nil, ErrMissingColumn
	}

	t := &Table{Columns: headers}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		row := make(schedule.RawRow, len(headers))
		for j, h := range headers {
			if h == "" {
				continue
			}
			var cell string
			if j < len(rows[i]) {
				cell = rows[i][j]
			}
			if _, dup := row[h]; dup {
				continue
			}
			if dateCol[j] && cell != "" {
				row[h] = dateCell(i, j, cell)
				continue
			}
			row[h] = cell
		}
		t.Rows = append(t.Rows, row)
	}

	if len(t.Rows) == 0 {
		return nil, ErrEmptySheet
	}
	return t, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
