package student

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"studentkeeper/internal/app/client"
	"studentkeeper/internal/app/client/notify"
)

// StudentCmd - родительская команда для всех операций со студентами
var StudentCmd = &cobra.Command{
	Use:   "student",
	Short: "Управление студентами",
	Long:  `Добавление, просмотр, удаление и экспорт записей о студентах.`,
}

func appFrom(cmd *cobra.Command) (*client.App, error) {
	return client.FromContext(cmd.Context())
}

func console(cmd *cobra.Command) *notify.Console {
	return notify.NewConsole(cmd.OutOrStdout())
}

// prompter reads answers from the command input line by line.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(cmd *cobra.Command) *prompter {
	return &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.OutOrStdout()}
}

func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("ошибка чтения ввода: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func (p *prompter) confirm(question string) (bool, error) {
	answer, err := p.ask(question + " [y/N]")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
