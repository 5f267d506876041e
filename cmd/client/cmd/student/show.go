package student

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"studentkeeper/internal/app/client/viewmodel"
)

var showDetailPassword bool

var ShowCmd = &cobra.Command{
	Use:   "show [position]",
	Short: "Просмотреть студента",
	Long:  `Просмотр карточки студента по номеру из вывода list.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		list, row, err := selectPosition(cmd, args[0])
		if err != nil {
			return err
		}
		defer list.Dismiss()

		return renderDetail(cmd.OutOrStdout(), row, showDetailPassword)
	},
}

// selectPosition loads the list and opens the detail view on the given position.
func selectPosition(cmd *cobra.Command, arg string) (*viewmodel.StudentList, viewmodel.Row, error) {
	position, err := strconv.Atoi(arg)
	if err != nil {
		return nil, viewmodel.Row{}, fmt.Errorf("неверный номер студента: %q", arg)
	}

	app, err := appFrom(cmd)
	if err != nil {
		return nil, viewmodel.Row{}, err
	}

	list := app.StudentList(console(cmd))
	if err := list.Load(cmd.Context()); err != nil {
		return nil, viewmodel.Row{}, err
	}

	row, err := list.SelectPosition(position)
	if err != nil {
		return nil, viewmodel.Row{}, fmt.Errorf("студент не найден: %w", err)
	}
	return list, row, nil
}

func init() {
	ShowCmd.Flags().BoolVar(&showDetailPassword, "show-password", false, "показать пароль")
}
