package student

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studentkeeper/internal/app/client/export"
)

var (
	exportOutput    string
	exportPasswords bool
)

var ExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Экспорт студентов в Excel",
	Long: `Сохранение списка студентов в файл XLSX.

Пароли попадают в файл только с флагом --include-passwords.`,
	RunE: func(cmd *cobra.Command, _ []string) (err error) {
		if exportOutput == "" {
			return errors.New("не указан файл: --output")
		}

		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		list := app.StudentList(console(cmd))
		if err := list.Load(cmd.Context()); err != nil {
			return err
		}
		rows := list.Rows()

		f, err := os.OpenFile(exportOutput, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("ошибка создания файла: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("ошибка закрытия файла: %w", cerr)
			}
		}()

		if err := export.XLSX(f, rows, export.Options{IncludePasswords: exportPasswords}); err != nil {
			return fmt.Errorf("ошибка экспорта: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Экспортировано студентов: %d (%s)\n", len(rows), exportOutput)
		return nil
	},
}

func init() {
	ExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "путь к файлу XLSX")
	ExportCmd.Flags().BoolVar(&exportPasswords, "include-passwords", false, "включить пароли в файл")
}
