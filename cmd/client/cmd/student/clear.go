package student

import (
	"fmt"

	"github.com/spf13/cobra"

	"studentkeeper/internal/domain/student"
)

var clearYes bool

var ClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Удалить всех студентов",
	Long: `Удаление всех записей о студентах.

При CLEAR_SCOPE=namespace очищается всё пространство имён хранилища,
включая чужие ключи.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFrom(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if app.Store().Scope() == student.ClearNamespace {
			fmt.Fprintf(out, "⚠️  Будет очищено всё пространство имён %q, а не только ключ %q\n",
				app.Config().Namespace, app.Store().Key())
		}

		if !clearYes {
			ok, err := newPrompter(cmd).confirm("Удалить все данные?")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(out, "Очистка отменена")
				return nil
			}
		}

		return app.StudentList(console(cmd)).ClearAll(cmd.Context())
	},
}

func init() {
	ClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "не спрашивать подтверждение")
}
