// Package export moves the student list in and out of Excel workbooks.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"studentkeeper/internal/app/client/viewmodel"
	"studentkeeper/internal/domain/student"
)

// SheetName is the sheet the list is written to.
const SheetName = "Students"

const (
	colPosition  = "#"
	colLastName  = "Last Name"
	colFirstName = "First Name"
	colCourse    = "Course"
	colUsername  = "Username"
	colPassword  = "Password"
)

var ErrNoSheet = errors.New("workbook has no sheets")

type Options struct {
	// IncludePasswords adds the Password column. Passwords are left out otherwise.
	IncludePasswords bool
}

// XLSX writes rows to w as a workbook with a single Students sheet.
func XLSX(w io.Writer, rows []viewmodel.Row, opts Options) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := []interface{}{colPosition, colLastName, colFirstName, colCourse, colUsername}
	if opts.IncludePasswords {
		header = append(header, colPassword)
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range rows {
		values := []interface{}{
			row.Position,
			row.Student.LastName,
			row.Student.FirstName,
			row.Student.Course,
			row.Student.Username,
		}
		if opts.IncludePasswords {
			values = append(values, row.Student.Password)
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %s: %w", row.Position, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// Skipped is a sheet row that could not be turned into a complete Input.
type Skipped struct {
	Row     int
	Missing []student.Field
}

// ReadXLSX reads students from the first sheet of a workbook. The first row is
// a header naming the columns, in any order; unknown columns are ignored, so a
// file written by XLSX with passwords reads back unchanged. Rows with a blank
// field are reported in skipped rather than returned. Fully empty rows are
// dropped silently.
func ReadXLSX(r io.Reader) (inputs []student.Input, skipped []Skipped, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, ErrNoSheet
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}

	columns := headerColumns(rows[0])
	for i, row := range rows[1:] {
		in := student.Input{
			FirstName: cellAt(row, columns, student.FieldFirstName),
			LastName:  cellAt(row, columns, student.FieldLastName),
			Course:    cellAt(row, columns, student.FieldCourse),
			Username:  cellAt(row, columns, student.FieldUsername),
			Password:  cellAt(row, columns, student.FieldPassword),
		}

		missing := in.Blank()
		if len(missing) == len(student.Fields) {
			continue
		}
		if len(missing) > 0 {
			// +2: header row and 1-based numbering
			skipped = append(skipped, Skipped{Row: i + 2, Missing: missing})
			continue
		}
		inputs = append(inputs, in)
	}

	return inputs, skipped, nil
}

func headerColumns(header []string) map[student.Field]int {
	names := map[string]student.Field{
		strings.ToLower(colFirstName): student.FieldFirstName,
		strings.ToLower(colLastName):  student.FieldLastName,
		strings.ToLower(colCourse):    student.FieldCourse,
		strings.ToLower(colUsername):  student.FieldUsername,
		strings.ToLower(colPassword):  student.FieldPassword,
	}

	columns := make(map[student.Field]int, len(names))
	for i, name := range header {
		if field, ok := names[strings.ToLower(strings.TrimSpace(name))]; ok {
			columns[field] = i
		}
	}
	return columns
}

func cellAt(row []string, columns map[student.Field]int, field student.Field) string {
	i, ok := columns[field]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
