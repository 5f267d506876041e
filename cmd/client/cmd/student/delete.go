package student

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteYes bool

var DeleteCmd = &cobra.Command{
	Use:   "delete [position]",
	Short: "Удалить студента",
	Long: `Удаление студента по номеру из вывода list.

Перед удалением показывается карточка студента и запрашивается подтверждение.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, row, err := selectPosition(cmd, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if err := renderDetail(out, row, false); err != nil {
			return err
		}

		if !deleteYes {
			ok, err := newPrompter(cmd).confirm("Удалить студента?")
			if err != nil {
				return err
			}
			if !ok {
				list.Dismiss()
				fmt.Fprintln(out, "Удаление отменено")
				return nil
			}
		}

		return list.ConfirmDelete(cmd.Context())
	},
}

func init() {
	DeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "не спрашивать подтверждение")
}
