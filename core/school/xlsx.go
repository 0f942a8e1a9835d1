package school

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/shulehub/shule/core"
)

// spreadsheet column headers (case-insensitive on import)
const (
	colName        = "Name"
	colFirstName   = "First Name"
	colLastName    = "Last Name"
	colEmail       = "Email"
	colParentEmail = "Parent Email"
	colProgress    = "Progress"
)

var errNoSheets = errors.New("spreadsheet does not contain any sheets")

// ReadStudentsXLSX parses an uploaded roster spreadsheet into NewStudent rows.
// The first row is the header; `First Name`/`Last Name` columns are normalized
// into the single canonical Name, and non-numeric Progress values fall back to 0.
// Rows with no name at all are skipped.
func ReadStudentsXLSX(r io.Reader) ([]NewStudent, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "opening spreadsheet")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errNoSheets
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheet)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, header := range rows[0] {
		cols[strings.ToLower(core.CleanString(header))] = i
	}
	cell := func(row []string, header string) string {
		idx, ok := cols[strings.ToLower(header)]
		if !ok || idx >= len(row) {
			return ""
		}
		return core.CleanString(row[idx])
	}

	students := make([]NewStudent, 0, len(rows)-1)
	for _, row := range rows[1:] {
		name := cell(row, colName)
		if name == "" {
			name = core.CleanString(cell(row, colFirstName) + " " + cell(row, colLastName))
		}
		if name == "" {
			continue
		}

		progress, err := strconv.Atoi(cell(row, colProgress))
		if err != nil || progress < 0 {
			progress = 0
		}

		students = append(students, NewStudent{
			Name:        name,
			Email:       strings.ToLower(cell(row, colEmail)),
			ParentEmail: strings.ToLower(cell(row, colParentEmail)),
			Progress:    progress,
		})
	}
	return students, nil
}

// WriteStudentsXLSX renders the roster as a spreadsheet with the same column
// layout ReadStudentsXLSX accepts.
func WriteStudentsXLSX(students []Student) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []interface{}{colName, colEmail, colParentEmail, colProgress}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, errors.Wrap(err, "writing header row")
	}

	for i, s := range students {
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{s.Name, s.Email, s.ParentEmail, s.Progress}
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			return nil, errors.Wrapf(err, "writing row %d", i+2)
		}
	}
	return f.WriteToBuffer()
}
