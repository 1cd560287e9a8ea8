// Package program holds the compiled grid program: a fixed grid of
// instructions addressed by coordinate plus a small table of named labels.
package program

import (
	"fmt"

	"github.com/sarchlab/gridcc/instr"
)

// Program is a width x height grid of instructions stored row-major, plus
// the named label table used by the goto opcodes.
type Program struct {
	width  int
	height int
	cells  []instr.Instruction
	labels [instr.NamedLabelNumber]instr.Label
}

// New creates a reset program of the default size.
func New() *Program {
	return NewWithSize(instr.Width, instr.Height)
}

// NewWithSize creates a reset program of the given size.
func NewWithSize(width, height int) *Program {
	if width <= 0 || height <= 0 || width > instr.MaxCoord+1 || height > instr.MaxCoord+1 {
		panic(fmt.Sprintf("invalid program size %d x %d", width, height))
	}

	p := &Program{
		width:  width,
		height: height,
		cells:  make([]instr.Instruction, width*height),
	}
	p.Reset()

	return p
}

// Reset turns every cell into a placeholder and clears every named label.
func (p *Program) Reset() {
	for i := range p.cells {
		p.cells[i] = instr.Placeholder()
	}

	for i := range p.labels {
		p.labels[i] = instr.End
	}
}

// Width returns the number of columns.
func (p *Program) Width() int { return p.width }

// Height returns the number of rows.
func (p *Program) Height() int { return p.height }

// Size returns the number of cells.
func (p *Program) Size() int { return len(p.cells) }

// Contains reports whether (x, y) is on the grid.
func (p *Program) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < p.width && y < p.height
}

func (p *Program) index(x, y int) int {
	if !p.Contains(x, y) {
		panic(fmt.Sprintf("cell (%d, %d) outside %d x %d grid", x, y, p.width, p.height))
	}

	return y*p.width + x
}

// At returns the instruction at (x, y).
func (p *Program) At(x, y int) instr.Instruction {
	return p.cells[p.index(x, y)]
}

// Set stores an instruction at (x, y).
func (p *Program) Set(x, y int, in instr.Instruction) {
	p.cells[p.index(x, y)] = in
}

// Fetch returns the instruction a coordinate label addresses. It fails for
// quasi labels and for coordinates outside the grid.
func (p *Program) Fetch(l instr.Label) (instr.Instruction, bool) {
	if l.IsQuasi() || !p.Contains(l.X(), l.Y()) {
		return instr.Instruction{}, false
	}

	return p.At(l.X(), l.Y()), true
}

// Step returns the neighbor of (x, y) in direction d, if it is on the grid.
func (p *Program) Step(x, y int, d instr.Direction) (nx, ny int, ok bool) {
	dx, dy := d.Delta()
	nx, ny = x+dx, y+dy

	return nx, ny, p.Contains(nx, ny)
}

// Label returns named label slot n.
func (p *Program) Label(n int) instr.Label {
	return p.labels[n]
}

// SetLabel stores a target in named label slot n.
func (p *Program) SetLabel(n int, l instr.Label) {
	p.labels[n] = l
}

// Labels returns a copy of the named label table.
func (p *Program) Labels() [instr.NamedLabelNumber]instr.Label {
	return p.labels
}

// Occupied counts the cells that are not placeholders.
func (p *Program) Occupied() int {
	n := 0

	for _, c := range p.cells {
		if !c.Op.IsPlaceholder() {
			n++
		}
	}

	return n
}

// Equal reports whether both programs have the same size, cells and labels.
func (p *Program) Equal(o *Program) bool {
	if p.width != o.width || p.height != o.height || p.labels != o.labels {
		return false
	}

	for i := range p.cells {
		if p.cells[i] != o.cells[i] {
			return false
		}
	}

	return true
}
