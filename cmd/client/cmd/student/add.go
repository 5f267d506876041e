package student

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"studentkeeper/internal/domain/student"
)

var addInput student.Input

var AddCmd = &cobra.Command{
	Use:   "add",
	Short: "Добавить студента",
	Long: `Добавление нового студента.

Незаполненные флагами поля запрашиваются интерактивно. Курс выбирается
из списка по номеру или вводится текстом. Все поля обязательны.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		in, err := promptMissing(cmd, addInput)
		if err != nil {
			return err
		}

		st, err := app.AddStudent(console(cmd)).Submit(cmd.Context(), in)
		if err != nil {
			var verr *student.ValidationError
			if errors.As(err, &verr) {
				return fmt.Errorf("не заполнены поля: %s", joinFields(verr.Missing))
			}
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "ID: %s\n", st.ID)
		return nil
	},
}

func promptMissing(cmd *cobra.Command, in student.Input) (student.Input, error) {
	p := newPrompter(cmd)
	var err error

	if in.FirstName == "" {
		if in.FirstName, err = p.ask("First Name"); err != nil {
			return in, err
		}
	}
	if in.LastName == "" {
		if in.LastName, err = p.ask("Last Name"); err != nil {
			return in, err
		}
	}
	if in.Course == "" {
		if in.Course, err = askCourse(p); err != nil {
			return in, err
		}
	}
	if in.Username == "" {
		if in.Username, err = p.ask("Username"); err != nil {
			return in, err
		}
	}
	if in.Password == "" {
		if in.Password, err = askPassword(cmd, p); err != nil {
			return in, err
		}
	}

	return in, nil
}

func askCourse(p *prompter) (string, error) {
	fmt.Fprintln(p.out, "Select Course")
	for i, code := range student.KnownCourses {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, code)
	}

	answer, err := p.ask("Course")
	if err != nil {
		return "", err
	}
	answer = strings.TrimSpace(answer)

	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(student.KnownCourses) {
		return student.KnownCourses[n-1], nil
	}
	if answer != "" && !student.IsKnownCourse(answer) {
		fmt.Fprintf(p.out, "Курс %q не из списка, сохраняем как есть\n", answer)
	}
	return answer, nil
}

// askPassword reads without echo when the input is a terminal.
func askPassword(cmd *cobra.Command, p *prompter) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(p.out, "Password: ")
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("ошибка чтения пароля: %w", err)
		}
		return string(password), nil
	}
	return p.ask("Password")
}

func joinFields(fields []student.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

func init() {
	AddCmd.Flags().StringVar(&addInput.FirstName, "first-name", "", "имя")
	AddCmd.Flags().StringVar(&addInput.LastName, "last-name", "", "фамилия")
	AddCmd.Flags().StringVar(&addInput.Course, "course", "", "курс (BSIT, BSCS, BSHM, BSCRIM или другой)")
	AddCmd.Flags().StringVar(&addInput.Username, "username", "", "имя пользователя")
	AddCmd.Flags().StringVar(&addInput.Password, "password", "", "пароль (лучше ввести интерактивно)")
}
