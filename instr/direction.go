// Package instr defines the encoding model shared by input graphs and grid
// programs: directions, pins, labels, opcodes and instructions.
package instr

import "fmt"

// Direction is one of the four grid directions an exit pin can point to.
type Direction uint8

const (
	Up Direction = iota
	Left
	Down
	Right
)

// Directions lists every direction in port search order.
var Directions = [4]Direction{Down, Left, Up, Right}

// Encoded bit patterns of the directions.
const (
	upBits    = 0b0011
	leftBits  = 0b1100
	downBits  = 0b0001
	rightBits = 0b0100
)

// Name returns the name of the direction.
func (d Direction) Name() string {
	switch d {
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Right:
		return "Right"
	default:
		panic("invalid direction")
	}
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}

	return d.Name()
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d <= Right
}

// Delta returns the coordinate offset of one step in direction d. Row 0 is
// the top of the grid, so Up decreases y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Left:
		return -1, 0
	case Down:
		return 0, 1
	case Right:
		return 1, 0
	default:
		panic("invalid direction")
	}
}

// Opposite returns the direction pointing back.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Left:
		return Right
	case Down:
		return Up
	case Right:
		return Left
	default:
		panic("invalid direction")
	}
}

// Bits returns the encoded bit pattern of the direction.
func (d Direction) Bits() uint8 {
	switch d {
	case Up:
		return upBits
	case Left:
		return leftBits
	case Down:
		return downBits
	case Right:
		return rightBits
	default:
		panic("invalid direction")
	}
}

// DirectionFromBits decodes an encoded bit pattern.
func DirectionFromBits(b uint8) (Direction, bool) {
	switch b {
	case upBits:
		return Up, true
	case leftBits:
		return Left, true
	case downBits:
		return Down, true
	case rightBits:
		return Right, true
	}

	return 0, false
}
