// Package sheet reads exam schedule spreadsheets into schedule rows.
//
// Excel workbooks (.xlsx, .xlsm) are read with excelize from the first sheet
// unless another one is configured. CSV files are read with encoding/csv. In
// both cases the first row holds the headers, which are NFC-normalized so
// accented aliases match regardless of how the file was saved.
//
// Numeric cells in exam date columns that the workbook displays as dates are
// returned as time.Time, so the notice shows them as DD/MM/YYYY.
//
// # Usage
//
//	table, err := sheet.Read(file, header.Filename, sheet.WithColumns(cols))
//	if err != nil {
//		var rerr *sheet.ReadError
//		if errors.As(err, &rerr) {
//			// rerr.Filename, rerr.Err
//		}
//		return err
//	}
//	recipients := schedule.Group(table.Rows, cols)
//
// # Errors
//
//   - ErrUnsupportedFormat: the file extension is not xlsx, xlsm or csv
//   - ErrEmptySheet: no header row or no data rows
//   - ErrMissingColumn: no recipient address column
//
// All errors are wrapped in *ReadError.
package sheet
