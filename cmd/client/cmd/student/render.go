package student

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"studentkeeper/internal/app/client/viewmodel"
)

const passwordMask = "********"

func password(value string, show bool) string {
	if show {
		return value
	}
	return passwordMask
}

func renderTable(w io.Writer, rows []viewmodel.Row) error {
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "Студенты не найдены")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tName\tCourse\tUsername\t\n")
	fmt.Fprintf(tw, "---\t---\t---\t---\t\n")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n",
			row.Position,
			row.Student.FullName(),
			row.Student.Course,
			row.Student.Username,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\nВсего студентов: %d\n", len(rows))
	return err
}

type jsonRow struct {
	Position  string `json:"position"`
	ID        string `json:"ID"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Course    string `json:"course"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

func renderJSON(w io.Writer, rows []viewmodel.Row, showPassword bool) error {
	out := make([]jsonRow, len(rows))
	for i, row := range rows {
		out[i] = jsonRow{
			Position:  row.Position,
			ID:        row.Student.ID,
			FirstName: row.Student.FirstName,
			LastName:  row.Student.LastName,
			Course:    row.Student.Course,
			Username:  row.Student.Username,
			Password:  password(row.Student.Password, showPassword),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, rows []viewmodel.Row, showPassword bool) error {
	cw := csv.NewWriter(w)
	header := []string{"position", "id", "last_name", "first_name", "course", "username"}
	if showPassword {
		header = append(header, "password")
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range rows {
		record := []string{
			row.Position,
			row.Student.ID,
			row.Student.LastName,
			row.Student.FirstName,
			row.Student.Course,
			row.Student.Username,
		}
		if showPassword {
			record = append(record, row.Student.Password)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func renderDetail(w io.Writer, row viewmodel.Row, showPassword bool) error {
	st := row.Student
	_, err := fmt.Fprintf(w, `=== Student Information ===
#:           %s
ID:          %s

First Name:  %s
Last Name:   %s
Course:      %s

Username:    %s
Password:    %s
`,
		row.Position, st.ID,
		st.FirstName, st.LastName, st.Course,
		st.Username, password(st.Password, showPassword),
	)
	return err
}
