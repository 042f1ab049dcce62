package sheet

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format, expected .xlsx, .xlsm or .csv")
	ErrEmptySheet        = errors.New("spreadsheet must have a header row and at least one data row")
	ErrMissingColumn     = errors.New("spreadsheet has no Email column")
	ErrContentMismatch   = errors.New("file content does not match its extension")
	ErrLegacyExcel       = errors.New("legacy .xls workbooks are not supported, re-save the file as .xlsx")
)

// ReadError is returned for any file that could not be read.
type ReadError struct {
	Err      error
	Filename string
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Filename, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
