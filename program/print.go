package program

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Print renders the occupied part of the grid and the named label table.
// Placeholder cells print as dots. Rows after the last occupied row are
// omitted.
func (p *Program) Print(w io.Writer) {
	last := -1

	for y := 0; y < p.height; y++ {
		for x := 0; x < p.width; x++ {
			if !p.At(x, y).Op.IsPlaceholder() {
				last = y
			}
		}
	}

	grid := table.NewWriter()
	grid.SetOutputMirror(w)
	grid.SetTitle(fmt.Sprintf("Program %d x %d", p.width, p.height))

	header := table.Row{"y\\x"}
	for x := 0; x < p.width; x++ {
		header = append(header, x)
	}

	grid.AppendHeader(header)

	for y := 0; y <= last; y++ {
		row := table.Row{y}

		for x := 0; x < p.width; x++ {
			in := p.At(x, y)
			if in.Op.IsPlaceholder() {
				row = append(row, ".")
				continue
			}

			row = append(row, in.Op.Name())
		}

		grid.AppendRow(row)
	}

	grid.Render()

	labels := table.NewWriter()
	labels.SetOutputMirror(w)
	labels.SetTitle("Named labels")
	labels.AppendHeader(table.Row{"Slot", "Target"})

	for i, l := range p.labels {
		labels.AppendRow(table.Row{i, l.CoordString()})
	}

	labels.Render()
}
