package student

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listFormat   string
	showPassword bool
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "Список студентов",
	Long: `Просмотр списка студентов в порядке добавления.

Номер в первой колонке действует только для текущего вывода и используется
командами show и delete. Пароли скрыты, пока не указан --show-password.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		list := app.StudentList(console(cmd))
		if err := list.Load(cmd.Context()); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch listFormat {
		case "json":
			return renderJSON(out, list.Rows(), showPassword)
		case "csv":
			return renderCSV(out, list.Rows(), showPassword)
		case "table", "":
			return renderTable(out, list.Rows())
		default:
			return fmt.Errorf("неизвестный формат вывода: %q", listFormat)
		}
	},
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "формат вывода (table, json, csv)")
	ListCmd.Flags().BoolVar(&showPassword, "show-password", false, "показать пароли")
}
