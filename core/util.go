package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	LevelTrace slog.Level = slog.LevelInfo + 1
)

func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// PrintState writes the cells the core executed so far as a table.
func PrintState(w io.Writer, c *Core) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle(fmt.Sprintf("%s: %s after %d steps", c.Name(), c.Reason(), len(c.Events())))
	t.AppendHeader(table.Row{"Step", "Cell", "OpCode", "Pin"})

	for _, e := range c.Events() {
		pin := "-"
		if e.Op.HasErr() {
			pin = e.Pin.String()
		}

		t.AppendRow(table.Row{e.Step, e.At.CoordString(), e.Op.Name(), pin})
	}

	t.Render()
}
