package instr

import "fmt"

// PinKind tells what kind of exit a pin describes.
type PinKind uint8

const (
	// PinNone means the exit does not exist.
	PinNone PinKind = iota
	// PinDir exits toward a neighboring cell.
	PinDir
	// PinSome exists but carries no direction.
	PinSome
	// PinSlot jumps through a named label.
	PinSlot
)

// Encoded pin values. someBits is disjoint from every direction pattern.
const (
	noneBits = 0b0000
	someBits = 0b1010
)

// Pin describes one exit of an opcode.
type Pin struct {
	kind PinKind
	dir  Direction
	slot uint8
}

// NonePin returns an absent pin.
func NonePin() Pin { return Pin{} }

// DirPin returns a pin exiting toward d.
func DirPin(d Direction) Pin {
	if !d.Valid() {
		panic("invalid direction")
	}

	return Pin{kind: PinDir, dir: d}
}

// SomePin returns a pin that exists without a direction.
func SomePin() Pin { return Pin{kind: PinSome} }

// SlotPin returns a pin that jumps through named label slot n.
func SlotPin(n int) Pin {
	if n < 0 || n >= NamedLabelNumber {
		panic(fmt.Sprintf("named label slot %d out of range", n))
	}

	return Pin{kind: PinSlot, slot: uint8(n)}
}

// Kind returns the pin kind.
func (p Pin) Kind() PinKind { return p.kind }

// Exists reports whether the pin is present.
func (p Pin) Exists() bool { return p.kind != PinNone }

// Direction returns the exit direction of a directional pin.
func (p Pin) Direction() (Direction, bool) {
	return p.dir, p.kind == PinDir
}

// Slot returns the named label slot of a slot pin.
func (p Pin) Slot() (int, bool) {
	return int(p.slot), p.kind == PinSlot
}

func (p Pin) bits() uint8 {
	switch p.kind {
	case PinDir:
		return p.dir.Bits()
	case PinSome, PinSlot:
		return someBits
	default:
		return noneBits
	}
}

func (p Pin) String() string {
	switch p.kind {
	case PinNone:
		return "none"
	case PinDir:
		return p.dir.Name()
	case PinSome:
		return "some"
	case PinSlot:
		return fmt.Sprintf("slot%d", p.slot)
	}

	return "invalid"
}

// PinID names one of the two exits of an instruction.
type PinID uint8

const (
	PinOK PinID = iota
	PinErr
)

// PinIDs lists both exits, ok first.
var PinIDs = [2]PinID{PinOK, PinErr}

func (id PinID) String() string {
	if id == PinOK {
		return "ok"
	}

	return "err"
}
