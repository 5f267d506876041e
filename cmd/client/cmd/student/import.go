package student

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"studentkeeper/internal/app/client/export"
	"studentkeeper/internal/app/client/viewmodel"
)

var importInput string

var ImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Импорт студентов из Excel",
	Long: `Добавление студентов из первого листа файла XLSX.

Первая строка должна содержать заголовки First Name, Last Name, Course,
Username и Password в любом порядке. Строки с пустыми полями пропускаются.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if importInput == "" {
			return errors.New("не указан файл: --input")
		}

		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		f, err := os.Open(importInput)
		if err != nil {
			return fmt.Errorf("ошибка открытия файла: %w", err)
		}
		defer f.Close()

		inputs, skipped, err := export.ReadXLSX(f)
		if err != nil {
			return fmt.Errorf("ошибка чтения файла: %w", err)
		}

		out := cmd.OutOrStdout()
		for _, s := range skipped {
			fmt.Fprintf(out, "Строка %d пропущена, не заполнены поля: %s\n", s.Row, joinFields(s.Missing))
		}

		// per-row notifications are noise here, only the summary is printed
		add := app.AddStudent(viewmodel.NotifierFunc(func(viewmodel.Notification) {}))
		imported := 0
		for _, in := range inputs {
			if _, err := add.Submit(cmd.Context(), in); err != nil {
				return fmt.Errorf("импорт остановлен после %d студентов: %w", imported, err)
			}
			imported++
		}

		fmt.Fprintf(out, "✓ Импортировано студентов: %d, пропущено строк: %d\n", imported, len(skipped))
		return nil
	},
}

func init() {
	ImportCmd.Flags().StringVarP(&importInput, "input", "i", "", "путь к файлу XLSX")
}
