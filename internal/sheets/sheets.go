// Package sheets maintains the legacy spreadsheet mirror under the
// data directory. Contact messages and bookings are appended to xlsx
// workbooks with the historical display-column headers; rows read back
// from those workbooks are mapped into typed records at this boundary
// so the rest of the pipeline never touches stringly keyed cells.
package sheets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

const (
	ContactSheetFile = "contact-messages.xlsx"
	BookingSheetFile = "bookings.xlsx"

	defaultSheet = "Sheet1"
)

// LegacyTimeLayout is the en-IN locale format the old export path wrote
// into the Submission Date and Timestamp columns.
const LegacyTimeLayout = "2/1/2006, 3:04:05 pm"

var (
	contactHeaders = []string{"Name", "Phone", "Service Interest", "Address", "Message", "Submission Date"}
	bookingHeaders = []string{"Booking ID", "Name", "Date", "Time", "Services", "Total Amount", "Status", "Timestamp", "Notes"}
)

// ContactRow is one spreadsheet-backed contact message. Field tags
// carry the legacy display-column names.
type ContactRow struct {
	Name            string `mapstructure:"Name"`
	Phone           string `mapstructure:"Phone"`
	ServiceInterest string `mapstructure:"Service Interest"`
	Address         string `mapstructure:"Address"`
	Message         string `mapstructure:"Message"`
	SubmittedAt     string `mapstructure:"Submission Date"`
}

// BookingRow is one spreadsheet-backed booking mirror row.
type BookingRow struct {
	BookingID   string `mapstructure:"Booking ID"`
	Name        string `mapstructure:"Name"`
	Date        string `mapstructure:"Date"`
	Time        string `mapstructure:"Time"`
	Services    string `mapstructure:"Services"`
	TotalAmount int64  `mapstructure:"Total Amount"`
	Status      string `mapstructure:"Status"`
	Timestamp   string `mapstructure:"Timestamp"`
	Notes       string `mapstructure:"Notes"`
}

// FormatLegacyTimestamp renders t the way the legacy exporter did.
func FormatLegacyTimestamp(t time.Time) string {
	return t.Format(LegacyTimeLayout)
}

// FormatBookingID renders a booking id for the Booking ID column.
func FormatBookingID(id int64) string {
	return fmt.Sprintf("%d", id)
}

// ReadContactRows loads every contact message row from the workbook at
// path. A missing file is an error; the caller decides whether that
// degrades to an empty set.
func ReadContactRows(path string) ([]ContactRow, error) {
	maps, err := readRowMaps(path)
	if err != nil {
		return nil, err
	}
	rows := make([]ContactRow, 0, len(maps))
	for i, m := range maps {
		var row ContactRow
		if err := decodeRow(m, &row); err != nil {
			return nil, errors.Wrapf(err, "contact sheet row %d", i+2)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadBookingRows loads every booking mirror row from the workbook.
func ReadBookingRows(path string) ([]BookingRow, error) {
	maps, err := readRowMaps(path)
	if err != nil {
		return nil, err
	}
	rows := make([]BookingRow, 0, len(maps))
	for i, m := range maps {
		var row BookingRow
		if err := decodeRow(m, &row); err != nil {
			return nil, errors.Wrapf(err, "booking sheet row %d", i+2)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// AppendContactRow appends one contact message to the workbook,
// creating it with headers when absent.
func AppendContactRow(path string, row ContactRow) error {
	return appendRow(path, contactHeaders, []interface{}{
		row.Name, row.Phone, row.ServiceInterest, row.Address, row.Message, row.SubmittedAt,
	})
}

// AppendBookingRow appends one booking mirror row to the workbook.
func AppendBookingRow(path string, row BookingRow) error {
	return appendRow(path, bookingHeaders, []interface{}{
		row.BookingID, row.Name, row.Date, row.Time, row.Services,
		row.TotalAmount, row.Status, row.Timestamp, row.Notes,
	})
}

// readRowMaps reads the first sheet into header-keyed cell maps.
func readRowMaps(path string) ([]map[string]interface{}, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open workbook %s", path)
	}
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheet = defaultSheet
	}
	rows := f.GetRows(sheet)
	if len(rows) < 2 {
		return nil, nil
	}
	headers := rows[0]
	out := make([]map[string]interface{}, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		if rowEmpty(cells) {
			continue
		}
		m := make(map[string]interface{}, len(headers))
		for i, h := range headers {
			h = strings.TrimSpace(h)
			if h == "" {
				continue
			}
			if i < len(cells) {
				m[h] = cells[i]
			} else {
				m[h] = ""
			}
		}
		out = append(out, m)
	}
	return out, nil
}

// decodeRow maps a header-keyed row into the typed record. Weak typing
// converts numeric cells stored as text.
func decodeRow(m map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(m)
}

func appendRow(path string, headers []string, cells []interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "create data dir")
	}

	var f *excelize.File
	next := 2
	if _, err := os.Stat(path); err == nil {
		f, err = excelize.OpenFile(path)
		if err != nil {
			return errors.Wrapf(err, "open workbook %s", path)
		}
		sheet := f.GetSheetName(f.GetActiveSheetIndex())
		if sheet == "" {
			sheet = defaultSheet
		}
		next = len(f.GetRows(sheet)) + 1
		if next < 2 {
			next = 2
		}
		writeCells(f, sheet, 1, headersToCells(headers))
		writeCells(f, sheet, next, cells)
	} else {
		f = excelize.NewFile()
		writeCells(f, defaultSheet, 1, headersToCells(headers))
		writeCells(f, defaultSheet, 2, cells)
	}
	return errors.Wrapf(f.SaveAs(path), "save workbook %s", path)
}

// rowEmpty reports whether every cell in the row is blank. Workbooks
// edited by hand often carry trailing blank rows; they are skipped
// rather than decoded into zero-valued records.
func rowEmpty(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func headersToCells(headers []string) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = h
	}
	return out
}

func writeCells(f *excelize.File, sheet string, row int, cells []interface{}) {
	for i, v := range cells {
		f.SetCellValue(sheet, cellAxis(i, row), v)
	}
}

// cellAxis builds an A1-style axis for column index col (0 based).
func cellAxis(col, row int) string {
	name := ""
	for col >= 0 {
		name = string(rune('A'+col%26)) + name
		col = col/26 - 1
	}
	return fmt.Sprintf("%s%d", name, row)
}
