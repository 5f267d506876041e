package slogpretty

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"golang.org/x/exp/slog"
)

func TestPrettyHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug}}
	log := slog.New(opts.NewPrettyHandler(&buf)).With("component", "test")

	log.Info("student added", "id", "abc", "error", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "INFO:")
	assert.Contains(t, out, "student added")
	assert.Contains(t, out, `"component": "test"`)
	assert.Contains(t, out, `"id": "abc"`)
	assert.Contains(t, out, `"error": "boom"`)
}

func TestPrettyHandler_Level(t *testing.T) {
	var buf bytes.Buffer
	opts := PrettyHandlerOptions{SlogOpts: &slog.HandlerOptions{Level: slog.LevelInfo}}
	log := slog.New(opts.NewPrettyHandler(&buf))

	log.Debug("hidden")

	assert.Empty(t, buf.String())
}
