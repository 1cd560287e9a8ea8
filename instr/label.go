package instr

import (
	"fmt"
	"math"
)

// Label is a control-flow target. In an input graph it is an instruction
// index; in a program it is a packed grid coordinate. The two largest values
// are quasi labels that never address anything.
type Label uint32

const (
	// End terminates execution.
	End Label = math.MaxUint32
	// Undefined means any continuation is acceptable.
	Undefined Label = math.MaxUint32 - 1
	// QuasiMin is the smallest quasi label.
	QuasiMin = Undefined
)

// Grid dimensions and named-label table size of the default target.
const (
	Width            = 12
	Height           = 80
	Size             = Width * Height
	NamedLabelNumber = 6
)

// MaxCoord is the largest value either coordinate half can hold without
// producing a quasi label.
const MaxCoord = 0x7FFF

// IsQuasi reports whether l is End or Undefined.
func (l Label) IsQuasi() bool {
	return l >= QuasiMin
}

// Coord packs a grid coordinate into a label. x occupies the low 16 bits and
// y the high 16 bits.
func Coord(x, y int) Label {
	if x < 0 || y < 0 || x > MaxCoord || y > MaxCoord {
		panic(fmt.Sprintf("coordinate (%d, %d) out of range", x, y))
	}

	return Label(uint32(y)<<16 | uint32(x))
}

// X returns the column of a coordinate label.
func (l Label) X() int {
	l.mustAddress()
	return int(uint32(l) & 0xFFFF)
}

// Y returns the row of a coordinate label.
func (l Label) Y() int {
	l.mustAddress()
	return int(uint32(l) >> 16)
}

// Index builds an input label from an instruction index.
func Index(i int) Label {
	if i < 0 || uint64(i) >= uint64(QuasiMin) {
		panic(fmt.Sprintf("instruction index %d out of range", i))
	}

	return Label(i)
}

// Index returns the instruction index an input label refers to.
func (l Label) Index() int {
	l.mustAddress()
	return int(l)
}

func (l Label) mustAddress() {
	if l.IsQuasi() {
		panic(fmt.Sprintf("quasi label %s has no address", l))
	}
}

func (l Label) String() string {
	switch l {
	case End:
		return "END"
	case Undefined:
		return "UNDEFINED"
	}

	return fmt.Sprintf("%d", uint32(l))
}

// CoordString formats l as "(x, y)" when it addresses a cell.
func (l Label) CoordString() string {
	if l.IsQuasi() {
		return l.String()
	}

	return fmt.Sprintf("(%d, %d)", l.X(), l.Y())
}
