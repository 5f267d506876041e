// Package notify shows view model notifications on a terminal.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"studentkeeper/internal/app/client/viewmodel"
)

// Console writes one colored line per notification.
type Console struct {
	out     io.Writer
	success *color.Color
	warning *color.Color
	failure *color.Color
}

// NewConsole returns a Console writing to out. A nil out means stdout.
func NewConsole(out io.Writer) *Console {
	if out == nil {
		out = os.Stdout
	}
	return &Console{
		out:     out,
		success: color.New(color.FgGreen),
		warning: color.New(color.FgYellow),
		failure: color.New(color.FgRed),
	}
}

// Notify implements viewmodel.Notifier.
func (c *Console) Notify(n viewmodel.Notification) {
	switch n.Kind {
	case viewmodel.KindSuccess:
		_, _ = c.success.Fprintln(c.out, "✓ "+n.Message)
	case viewmodel.KindWarning:
		_, _ = c.warning.Fprintln(c.out, "⚠️  "+n.Message)
	case viewmodel.KindError:
		_, _ = c.failure.Fprintln(c.out, "✗ "+n.Message)
	default:
		_, _ = fmt.Fprintln(c.out, n.Message)
	}
}

var _ viewmodel.Notifier = (*Console)(nil)
